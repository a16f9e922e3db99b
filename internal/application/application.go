package application

const (
	// AppName is the application name used for settings files and identification
	AppName = "abrt-cli"

	// DotDir is the per-user directory holding backend overrides and settings
	DotDir = ".abrt"
)
