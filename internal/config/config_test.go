// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/cmdgroups/internal/persist"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{in: "", want: BackendJSON},
		{in: "json", want: BackendJSON},
		{in: " SQLite ", want: BackendSQLite},
		{in: "postgres", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownBackend)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDataFile(t *testing.T) {
	stubs := gostub.Stub(&UserConfigDir, func() (string, error) { return "/home/u/.config", nil })
	defer stubs.Reset()

	p, err := DefaultDataFile(BackendJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u/.config", "cmdgroups", "command_groups.json"), p)

	p, err = DefaultDataFile(BackendSQLite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u/.config", "cmdgroups", "command_groups.db"), p)
}

func TestResolve(t *testing.T) {
	stubs := gostub.Stub(&UserConfigDir, func() (string, error) { return "/cfg", nil })
	defer stubs.Reset()

	c, err := Config{}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Config{DataFile: filepath.Join("/cfg", "cmdgroups", "command_groups.json"), Backend: BackendJSON}, c)

	c, err = Config{DataFile: "/x.json", Backend: "JSON"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Config{DataFile: "/x.json", Backend: BackendJSON}, c)

	stubs.Stub(&UserConfigDir, func() (string, error) { return "", errors.New("$HOME is not defined") })

	_, err = Config{}.Resolve()
	require.ErrorIs(t, err, ErrDataDir)
}

func TestOpenStore_JSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&persist.FsFactory, func() afero.Fs { return fs })
	stubs.Stub(&UserConfigDir, func() (string, error) { return "/cfg", nil })

	defer stubs.Reset()

	ctx := context.Background()

	opened, err := OpenStore(ctx, Config{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "cmdgroups", "command_groups.json"), opened.Config.DataFile)

	_, err = opened.Store.CreateGroup(ctx, "builds")
	require.NoError(t, err)
	require.NoError(t, opened.Close())

	exists, err := afero.Exists(fs, filepath.Join("/cfg", "cmdgroups", "command_groups.json"))
	require.NoError(t, err)
	assert.True(t, exists, "data file is written under the user config dir")
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "groups.db")

	opened, err := OpenStore(ctx, Config{DataFile: path, Backend: BackendSQLite})
	require.NoError(t, err)
	assert.Equal(t, path, opened.Config.DataFile)

	id, err := opened.Store.CreateGroup(ctx, "builds")
	require.NoError(t, err)
	require.NoError(t, opened.Close())

	opened, err = OpenStore(ctx, Config{DataFile: path, Backend: BackendSQLite})
	require.NoError(t, err)

	defer opened.Close() //nolint:errcheck

	g, err := opened.Store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "builds", g.Name)
}

func TestOpenStore_FallsBackToMemory(t *testing.T) {
	stubs := gostub.Stub(&UserConfigDir, func() (string, error) { return "", errors.New("no home") })
	defer stubs.Reset()

	ctx := context.Background()

	opened, err := OpenStore(ctx, Config{})
	require.NoError(t, err)
	assert.Empty(t, opened.Config.DataFile)

	_, err = opened.Store.CreateGroup(ctx, "in memory")
	require.NoError(t, err)
	assert.Len(t, opened.Store.List(), 1)
}

func TestOpenStore_SQLiteFailureHasNoDataFile(t *testing.T) {
	ctx := context.Background()

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	opened, err := OpenStore(ctx, Config{DataFile: filepath.Join(blocker, "groups.db"), Backend: BackendSQLite})
	require.NoError(t, err)
	assert.Empty(t, opened.Config.DataFile, "nothing is saved so there is no data file to report")
	assert.Equal(t, BackendSQLite, opened.Config.Backend)
	require.NoError(t, opened.Close())

	_, err = opened.Store.CreateGroup(ctx, "in memory")
	require.NoError(t, err)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), Config{Backend: "xml"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}
