// Package editor selects and launches the operator's text editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrNoEditor means no editor could be determined and the terminal is not
// usable for the fallback.
var ErrNoEditor = errors.New("cannot run vi: $TERM, $VISUAL and $EDITOR are not set")

// fallbackEditor is used when no environment variable selects an editor but
// the terminal looks usable.
const fallbackEditor = "vi"

// Resolve picks the editor command: $ABRT_EDITOR, then $VISUAL, then
// $EDITOR, falling back to vi unless $TERM is unset or dumb.
func Resolve() (string, error) {
	for _, name := range []string{"ABRT_EDITOR", "VISUAL", "EDITOR"} {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}

	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return "", ErrNoEditor
	}

	return fallbackEditor, nil
}

// Launch opens path in the given editor with the terminal passed through
// and blocks until the editor exits. The editor's exit status is not
// interpreted; only failure to launch it is an error.
func Launch(editor, path string) error {
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}

		return fmt.Errorf("failed to run %s: %w", editor, err)
	}

	return nil
}
