package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/ini.v1"

	"github.com/meztrex/abrt/internal/application"
)

// UserSettings is the per-user key-value settings file shared by the abrt
// front ends. The owning workflow loads it once, threads the value through
// its calls, and saves it explicitly; there is no ambient global state.
type UserSettings struct {
	path   string
	values map[string]string
}

// LoadUserSettings reads ~/.abrt/settings/<app>.conf from below home. A
// missing file yields empty settings, not an error. An empty home yields
// empty settings with persistence disabled.
func LoadUserSettings(home, app string) (*UserSettings, error) {
	s := &UserSettings{values: make(map[string]string)}
	if home == "" {
		return s, nil
	}
	s.path = filepath.Join(home, application.DotDir, "settings", app+".conf")

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s, nil
	}

	file, err := ini.Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.path, err)
	}

	for _, key := range file.Section("").Keys() {
		s.values[key.Name()] = key.Value()
	}

	return s, nil
}

// Get returns the value stored under name, or "" when absent.
func (s *UserSettings) Get(name string) string { return s.values[name] }

// Set stores a value under name.
func (s *UserSettings) Set(name, value string) { s.values[name] = value }

// Unset removes name from the settings.
func (s *UserSettings) Unset(name string) { delete(s.values, name) }

// Len returns the number of stored keys.
func (s *UserSettings) Len() int { return len(s.values) }

// Save writes the settings atomically: the file is written to a temporary
// path next to the target and renamed over it, with parent directories
// created as needed. The format is one `name = "value"` line per key, the
// same format the other front ends sharing the file write. Settings loaded
// without a home directory are not written anywhere.
func (s *UserSettings) Save() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf []byte
	for _, name := range names {
		buf = append(buf, fmt.Sprintf("%s = \"%s\"\n", name, s.values[name])...)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}
