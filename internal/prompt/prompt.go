// Package prompt implements the line-oriented operator interaction used
// during interactive reporting.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Prompter asks the operator questions during interactive reporting.
type Prompter interface {
	// Line prints the question and returns one line of input, without the
	// trailing newline. End of input yields "".
	Line(question string) string

	// YesNo asks a y/N question; only an answer starting with y or Y is
	// taken as yes.
	YesNo(question string) bool

	// Password reads a line with terminal echo suppressed.
	Password(question string) (string, error)
}

// Terminal prompts on stdin/stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a prompter bound to the process's stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (t *Terminal) Line(question string) string {
	fmt.Fprint(t.out, question)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	return strings.TrimRight(line, "\r\n")
}

func (t *Terminal) YesNo(question string) bool {
	answer := t.Line(question + " [y/N]: ")

	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}

// Password reads without echoing when stdin is a terminal; echo is restored
// by term.ReadPassword itself before it returns. Piped input falls back to
// a plain line read.
func (t *Terminal) Password(question string) (string, error) {
	fmt.Fprint(t.out, question)

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		// The suppressed Enter did not echo a newline; add one.
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return string(password), nil
	}

	return t.Line(""), nil
}
