package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meztrex/abrt/internal/application"
	"github.com/meztrex/abrt/internal/daemon"
	"github.com/meztrex/abrt/internal/prompt"
	"github.com/meztrex/abrt/internal/report"
	"github.com/meztrex/abrt/internal/settings"
)

var (
	reportBatch  bool
	reportSilent bool
)

var reportCmd = &cobra.Command{
	Use:   "report <crash-id>",
	Short: "Review and send a crash report",
	Long: `Report fetches the crash data for the given id from the crash daemon,
opens it in your editor for review, and submits it to every reporting backend
configured for the crash, asking for confirmation and missing credentials
along the way.

In batch mode the editor and all prompts are skipped and the submission goes
to all applicable backends in a single call.

The editor is taken from $ABRT_EDITOR, $VISUAL or $EDITOR, falling back to vi.

Examples:
  abrt-cli report 1b4a4c75-8ec7-4a8b-924d-18dfa16a2dfb
  abrt-cli report --batch 1b4a4c75-8ec7-4a8b-924d-18dfa16a2dfb`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVarP(&reportBatch, "batch", "b", false, "Submit without editing or prompting")
	reportCmd.Flags().BoolVar(&reportSilent, "silent-if-not-found", false, "Do not complain when the crash id is unknown")
	_ = reportCmd.Flags().MarkHidden("silent-if-not-found")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	client, err := daemon.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to the crash daemon: %w", err)
	}
	defer func() { _ = client.Close() }()

	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug("no home directory, per-user settings disabled", "error", err)
		home = ""
	}

	// The settings file is shared with the other abrt front ends; load it
	// for the duration of the run and write it back so keys written by
	// them survive. This tool itself adds none.
	user, err := settings.LoadUserSettings(home, application.AppName)
	if err != nil {
		slog.Warn("cannot load user settings", "error", err)
	}
	defer func() {
		if user != nil && user.Len() > 0 {
			if err := user.Save(); err != nil {
				slog.Warn("cannot save user settings", "error", err)
			}
		}
	}()

	orch := report.New(report.Config{
		Daemon:   client,
		Resolver: settings.NewResolver(client, home, slog.Default()),
		Prompt:   prompt.NewTerminal(),
		Logger:   slog.Default(),
	})

	return orch.Run(cmd.Context(), args[0], report.Options{
		Batch:            reportBatch,
		SilentIfNotFound: reportSilent,
	})
}
