package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{
			name: "tool override wins",
			env:  map[string]string{"ABRT_EDITOR": "nano", "VISUAL": "vim", "EDITOR": "emacs", "TERM": "xterm"},
			want: "nano",
		},
		{
			name: "visual before editor",
			env:  map[string]string{"VISUAL": "vim", "EDITOR": "emacs", "TERM": "xterm"},
			want: "vim",
		},
		{
			name: "editor as last variable",
			env:  map[string]string{"EDITOR": "emacs", "TERM": "xterm"},
			want: "emacs",
		},
		{
			name: "fallback on usable terminal",
			env:  map[string]string{"TERM": "xterm"},
			want: "vi",
		},
		{
			name:    "no editor and no terminal",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:    "no editor and dumb terminal",
			env:     map[string]string{"TERM": "dumb"},
			wantErr: true,
		},
		{
			name: "explicit editor beats dumb terminal",
			env:  map[string]string{"EDITOR": "emacs", "TERM": "dumb"},
			want: "emacs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"ABRT_EDITOR", "VISUAL", "EDITOR", "TERM"} {
				t.Setenv(name, tt.env[name])
			}

			got, err := Resolve()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoEditor)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLaunch_ExitStatusIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("text\n"), 0o600))

	// false(1) exits nonzero without touching its arguments.
	require.NoError(t, Launch("false", path))
}

func TestLaunch_CannotStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("text\n"), 0o600))

	require.Error(t, Launch("no-such-editor-5f21", path))
}
