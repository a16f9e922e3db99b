package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meztrex/abrt/internal/application"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", application.AppName, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
