package main

import "github.com/meztrex/abrt/cmd"

func main() {
	cmd.Execute()
}
