// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/persist"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
)

const (
	// AppName names the directory under the user configuration directory.
	AppName = "cmdgroups"
	// DataFileEnvVar overrides the data file location.
	DataFileEnvVar = "CMDGROUPS_DATA_FILE"
	// BackendEnvVar selects the storage backend.
	BackendEnvVar = "CMDGROUPS_STORE"

	jsonFileName   = "command_groups.json"
	sqliteFileName = "command_groups.db"
)

var (
	// ErrUnknownBackend is returned for a backend name other than json or sqlite.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrDataDir is returned when the user configuration directory cannot be determined.
	ErrDataDir = errors.New("cannot determine data directory")
)

// UserConfigDir returns the per user application data directory.
var UserConfigDir = os.UserConfigDir

// Backend selects how the groups are persisted.
type Backend string

const (
	// BackendJSON keeps everything in one JSON document.
	BackendJSON Backend = "json"
	// BackendSQLite keeps everything in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// ParseBackend validates a backend name. An empty name is BackendJSON.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendJSON:
		return BackendJSON, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// DataDir returns the directory holding the data file.
func DataDir() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrDataDir, err)
	}

	return filepath.Join(dir, AppName), nil
}

// DefaultDataFile returns the data file location for a backend.
func DefaultDataFile(b Backend) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}

	if b == BackendSQLite {
		return filepath.Join(dir, sqliteFileName), nil
	}

	return filepath.Join(dir, jsonFileName), nil
}

// Config says where and how the store is persisted.
type Config struct {
	DataFile string  // Empty means DefaultDataFile(Backend)
	Backend  Backend // Empty means BackendJSON
}

// Resolve fills in defaults.
func (c Config) Resolve() (Config, error) {
	b, err := ParseBackend(string(c.Backend))
	if err != nil {
		return Config{}, err
	}

	c.Backend = b

	if c.DataFile == "" {
		if c.DataFile, err = DefaultDataFile(b); err != nil {
			return Config{}, err
		}
	}

	return c, nil
}

// Opened is a store together with where it is saved.
type Opened struct {
	Store *store.Store
	// Config is the resolved configuration. DataFile is empty when the store
	// fell back to memory and nothing is saved.
	Config Config
	// Close releases the backend.
	Close func() error
}

// OpenStore opens the store described by c.
//
// A data location that cannot be determined or opened is not fatal: it is logged and
// the store runs in memory only.
func OpenStore(ctx context.Context, c Config) (Opened, error) {
	noop := func() error { return nil }

	b, err := ParseBackend(string(c.Backend))
	if err != nil {
		return Opened{}, err
	}

	resolved, err := c.Resolve()
	if err != nil {
		ctxlog.Error(ctx, "no data location, groups will not be saved", "error", err)
		return Opened{Store: store.Open(ctx, nil), Config: Config{Backend: b}, Close: noop}, nil
	}

	ctx = ctxlog.With(ctx, "backend", string(resolved.Backend), "dataFile", resolved.DataFile)

	switch resolved.Backend {
	case BackendSQLite:
		db, err := persist.OpenSQLite(ctx, resolved.DataFile)
		if err != nil {
			ctxlog.Error(ctx, "cannot open database, groups will not be saved", "error", err)
			return Opened{Store: store.Open(ctx, nil), Config: Config{Backend: b}, Close: noop}, nil
		}

		return Opened{Store: store.Open(ctx, db), Config: resolved, Close: db.Close}, nil
	default:
		return Opened{Store: store.Open(ctx, persist.NewJSONFile(resolved.DataFile)), Config: resolved, Close: noop}, nil
	}
}
