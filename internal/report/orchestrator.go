// Package report drives the end-to-end crash reporting workflow: obtain the
// report from the daemon, let the operator review and edit it, select the
// applicable backends, gate and dispatch each one, and aggregate the
// per-backend outcomes.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/meztrex/abrt/internal/crashdata"
	"github.com/meztrex/abrt/internal/daemon"
	"github.com/meztrex/abrt/internal/editor"
	"github.com/meztrex/abrt/internal/prompt"
	"github.com/meztrex/abrt/internal/reportfile"
	"github.com/meztrex/abrt/internal/settings"
)

// ratingThreshold is the minimum crash rating a backend with RatingRequired
// accepts. Ratings run from 0 (unusable backtrace) to 4.
const ratingThreshold = 3

// Caller is the daemon surface the orchestrator needs.
type Caller interface {
	CreateReport(ctx context.Context, crashID string) (*crashdata.Report, error)
	Report(ctx context.Context, r *crashdata.Report, reporters []string, settings map[string]map[string]string) (map[string]daemon.Status, error)
}

// EditFunc opens the document at path for interactive review and blocks
// until the operator is done with it.
type EditFunc func(path string) error

// Config wires the orchestrator's collaborators.
type Config struct {
	Daemon   Caller
	Resolver *settings.Resolver
	Prompt   prompt.Prompter

	// Edit overrides how the document is edited; nil launches the external
	// editor selected from the environment.
	Edit EditFunc

	// Out receives the operator-visible status lines; nil means stdout.
	Out io.Writer

	Logger *slog.Logger
}

// Options adjust a single reporting run.
type Options struct {
	// Batch skips editing and all prompting and submits to every applicable
	// backend in one aggregated daemon call.
	Batch bool

	// SilentIfNotFound suppresses the diagnostic when the crash id is
	// unknown; the run still fails with ErrNotFound.
	SilentIfNotFound bool
}

// Orchestrator runs the reporting workflow for one crash at a time. Backends
// are processed strictly in order; there is no concurrent dispatch, since
// gating and credential prompts depend on in-order interaction.
type Orchestrator struct {
	daemon   Caller
	resolver *settings.Resolver
	prompt   prompt.Prompter
	edit     EditFunc
	out      io.Writer
	log      *slog.Logger
}

// New returns an orchestrator with unset collaborators defaulted.
func New(cfg Config) *Orchestrator {
	o := &Orchestrator{
		daemon:   cfg.Daemon,
		resolver: cfg.Resolver,
		prompt:   cfg.Prompt,
		edit:     cfg.Edit,
		out:      cfg.Out,
		log:      cfg.Logger,
	}

	if o.edit == nil {
		o.edit = launchEditor
	}
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.log == nil {
		o.log = slog.Default()
	}

	return o
}

// Run reports the crash with the given id. Per-backend failures are printed
// and aggregated rather than aborting the run; the returned error is
// ErrReportFailed when any backend failed, or one of the fatal workflow
// errors (ErrNotFound, ErrTemporaryResource, ErrEditorUnavailable).
func (o *Orchestrator) Run(ctx context.Context, crashID string, opts Options) error {
	crash, err := o.daemon.CreateReport(ctx, crashID)
	if err != nil || crash == nil || crash.Empty() {
		if !opts.SilentIfNotFound {
			o.log.Error("crash not found", "crash_id", crashID, "error", err)
		}

		return fmt.Errorf("%w: %s", ErrNotFound, crashID)
	}

	// Captured before editing; the quality gate never sees rating edits.
	rating := crash.Rating()

	if !opts.Batch {
		if err := o.editReport(crash); err != nil {
			return err
		}
	}

	reporters := crash.Reporters()
	resolved := o.resolver.Resolve(ctx, reporters)

	var attempted, failed int
	if opts.Batch {
		attempted, failed, err = o.dispatchBatch(ctx, crash, reporters, resolved)
	} else {
		attempted, failed = o.dispatchEach(ctx, crash, rating, reporters, resolved)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "Crash reported via %d report events (%d errors)\n", attempted, failed)

	if failed > 0 {
		return ErrReportFailed
	}

	return nil
}

// editReport writes the report to a temporary document, hands it to the
// editor and reads the edits back. The temporary file is removed on every
// path once it has been created.
func (o *Orchestrator) editReport(crash *crashdata.Report) error {
	crash.EnsureEditorFields()

	tmp, err := os.CreateTemp("", "abrt-report.*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemporaryResource, err)
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()

	_, werr := tmp.WriteString(reportfile.Serialize(crash))
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("%w: %v", ErrTemporaryResource, werr)
	}

	if err := o.edit(path); err != nil {
		return fmt.Errorf("%w: %v", ErrEditorUnavailable, err)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemporaryResource, err)
	}

	changed := reportfile.Deserialize(reportfile.Decode(string(text)), crash)
	if changed > 0 {
		fmt.Fprintln(o.out, "\nThe report has been updated")
	} else {
		fmt.Fprintln(o.out, "\nNo changes were detected in the report")
	}

	return nil
}

// dispatchBatch submits to all backends in one aggregated call. No quality
// gate and no credential prompts apply here: there is no operator to ask,
// and the gate stays daemon-side policy for aggregated submissions.
func (o *Orchestrator) dispatchBatch(ctx context.Context, crash *crashdata.Report, reporters []string, resolved map[string]map[string]string) (attempted, failed int, _ error) {
	fmt.Fprintln(o.out, "Reporting...")

	statuses, err := o.daemon.Report(ctx, crash, reporters, resolved)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to submit report: %w", err)
	}

	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := statuses[name]
		fmt.Fprintf(o.out, "%s: %s\n", name, st.Message)

		attempted++
		if !st.OK {
			failed++
		}
	}

	return attempted, failed, nil
}

// dispatchEach walks the backends one by one: confirm with the operator,
// check configuration and the quality gate, collect missing credentials,
// submit, and record the outcome. A declined backend is skipped without
// counting; every other skip counts as a failure.
func (o *Orchestrator) dispatchEach(ctx context.Context, crash *crashdata.Report, rating int, reporters []string, resolved map[string]map[string]string) (attempted, failed int) {
	for _, name := range reporters {
		if !o.prompt.YesNo(fmt.Sprintf("Report using %s?", name)) {
			fmt.Fprintln(o.out, "Skipping...")
			continue
		}

		cfg, ok := resolved[name]
		if !ok {
			fmt.Fprintln(o.out, "Error loading reporter settings")
			attempted++
			failed++

			continue
		}

		if gated(cfg, rating) {
			fmt.Fprintln(o.out, "Reporting disabled because the backtrace is unusable")
			if pkg := crash.Content(crashdata.FieldPackage); pkg != "" {
				fmt.Fprintf(o.out, "Please try to install debuginfo manually using the command: \"debuginfo-install %s\" and try again\n", pkg)
			}

			attempted++
			failed++

			continue
		}

		o.askMissingCredentials(name, cfg)

		statuses, err := o.daemon.Report(ctx, crash, []string{name}, resolved)
		if err != nil {
			fmt.Fprintf(o.out, "%s: %v\n", name, err)
			attempted++
			failed++

			continue
		}

		st := statuses[name]
		fmt.Fprintf(o.out, "%s: %s\n", name, st.Message)

		attempted++
		if !st.OK {
			failed++
		}
	}

	return attempted, failed
}

// gated reports whether the backend requires a usable backtrace that this
// crash does not have.
func gated(cfg map[string]string, rating int) bool {
	v, ok := cfg["RatingRequired"]

	return ok && parseBool(v) && rating < ratingThreshold
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "true", "on":
		return true
	}

	return false
}

// askMissingCredentials prompts for Login and Password values the backend
// declares but leaves empty. The answers are layered onto this run's
// configuration only and are never persisted.
func (o *Orchestrator) askMissingCredentials(name string, cfg map[string]string) {
	login, haveLogin := cfg["Login"]
	password, havePassword := cfg["Password"]

	loginMissing := haveLogin && login == ""
	passwordMissing := havePassword && password == ""
	if !loginMissing && !passwordMissing {
		return
	}

	fmt.Fprintf(o.out, "Wrong settings were detected for plugin %s\n", name)

	if loginMissing {
		cfg["Login"] = o.prompt.Line("Enter your login: ")
	}

	if passwordMissing {
		answer, err := o.prompt.Password("Enter your password: ")
		if err != nil {
			o.log.Warn("cannot read password", "error", err)
			return
		}

		cfg["Password"] = answer
	}
}

// launchEditor is the default EditFunc: resolve the editor from the
// environment and run it on the document.
func launchEditor(path string) error {
	cmd, err := editor.Resolve()
	if err != nil {
		return err
	}

	return editor.Launch(cmd, path)
}
