// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package persist

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed schema.sql
var schemaSQL string

// SQLite stores the state in a SQLite database with one table for groups and one for commands.
type SQLite struct {
	db   *sql.DB
	path string
}

var _ store.Persister = (*SQLite)(nil)

// OpenSQLite opens or creates the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return nil, errors.Join(ErrLoad, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}

	// A single connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrLoad, err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrLoad, err)
	}

	ctxlog.Debug(ctx, "sqlite database opened", "path", path)

	return &SQLite{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLite) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads every group and its commands in insertion order.
func (s *SQLite) Load(ctx context.Context) (store.State, error) {
	state := store.NewState()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM command_groups")
	if err != nil {
		return store.State{}, errors.Join(ErrLoad, err)
	}

	for rows.Next() {
		var g store.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			_ = rows.Close()
			return store.State{}, errors.Join(ErrLoad, err)
		}

		g.Commands = []store.Command{}
		state.Groups[g.ID] = g
	}

	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return store.State{}, errors.Join(ErrLoad, err)
	}

	rows, err = s.db.QueryContext(ctx,
		"SELECT group_id, id, name, command, detached FROM group_commands ORDER BY group_id, position")
	if err != nil {
		return store.State{}, errors.Join(ErrLoad, err)
	}

	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var (
			groupID string
			c       store.Command
		)

		if err := rows.Scan(&groupID, &c.ID, &c.Name, &c.CommandLine, &c.Detached); err != nil {
			return store.State{}, errors.Join(ErrLoad, err)
		}

		g, ok := state.Groups[groupID]
		if !ok {
			continue
		}

		g.Commands = append(g.Commands, c)
		state.Groups[groupID] = g
	}

	if err := rows.Err(); err != nil {
		return store.State{}, errors.Join(ErrLoad, err)
	}

	return state, nil
}

// Save replaces every row in a single transaction.
func (s *SQLite) Save(ctx context.Context, state store.State) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrSave, err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = errors.Join(ErrSave, err)
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM group_commands"); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM command_groups"); err != nil {
		return err
	}

	for _, id := range slices.Sorted(maps.Keys(state.Groups)) {
		g := state.Groups[id]

		if _, err = tx.ExecContext(ctx, "INSERT INTO command_groups (id, name) VALUES (?, ?)", id, g.Name); err != nil {
			return err
		}

		for pos, c := range g.Commands {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO group_commands (id, group_id, position, name, command, detached) VALUES (?, ?, ?, ?, ?, ?)",
				c.ID, id, pos, c.Name, c.CommandLine, c.Detached,
			); err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	ctxlog.Debug(ctx, "sqlite database saved", "path", s.path, "groups", len(state.Groups))

	return nil
}
