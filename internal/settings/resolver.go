// Package settings resolves the layered configuration of reporting backends
// and owns the persisted per-user settings file.
//
// A backend's effective configuration is built from three layers, lowest
// precedence first: the defaults the backend reports through the daemon, the
// system-wide settings already merged into those defaults daemon-side, and
// the per-user override file in ~/.abrt. Interactive credential answers form
// a fourth, in-memory-only layer applied by the dispatch workflow.
package settings

import (
	"context"
	"log/slog"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/meztrex/abrt/internal/application"
)

// Store fetches a backend's default configuration from the daemon.
type Store interface {
	PluginSettings(ctx context.Context, name string) (map[string]string, error)
}

// Resolver builds per-backend configuration from daemon defaults overlaid
// with the user's ~/.abrt/<backend>.conf file.
type Resolver struct {
	store Store
	home  string
	log   *slog.Logger
}

// NewResolver returns a resolver reading user overrides below home. An empty
// home disables the per-user layer.
func NewResolver(store Store, home string, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}

	return &Resolver{store: store, home: home, log: log}
}

// Resolve returns one configuration per backend, keyed by backend name. A
// backend whose daemon defaults cannot be fetched is absent from the result;
// callers must treat absence as a hard error for that backend rather than
// substituting an empty configuration.
func (r *Resolver) Resolve(ctx context.Context, backends []string) map[string]map[string]string {
	resolved := make(map[string]map[string]string, len(backends))

	for _, name := range backends {
		defaults, err := r.store.PluginSettings(ctx, name)
		if err != nil {
			r.log.Warn("cannot fetch backend settings", "backend", name, "error", err)
			continue
		}

		cfg := make(map[string]string, len(defaults))
		for k, v := range defaults {
			cfg[k] = v
		}

		r.overlayUserFile(name, cfg)
		resolved[name] = cfg
	}

	return resolved
}

// overlayUserFile merges ~/.abrt/<backend>.conf into cfg. Keys with empty
// values are merged too: the user may intentionally clear a system default
// (e.g. a stored password) to be prompted for it on every report. A missing
// or unreadable file is not an error; the defaults simply stand.
func (r *Resolver) overlayUserFile(name string, cfg map[string]string) {
	if r.home == "" {
		return
	}

	path := filepath.Join(r.home, application.DotDir, name+".conf")

	file, err := ini.Load(path)
	if err != nil {
		return
	}

	for _, key := range file.Section("").Keys() {
		cfg[key.Name()] = key.Value()
	}
}
