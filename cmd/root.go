package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meztrex/abrt/internal/application"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Review and report application crashes",
	Long: `abrt-cli lets you review a collected crash report, edit it in your
text editor, and send it to the reporting backends configured for the crash.
The crash data itself is collected and stored by the crash daemon; this tool
only drives the review-and-report workflow.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// Execute runs the root command. The process exits non-zero when any part
// of the invoked workflow failed, including per-backend reporting errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
