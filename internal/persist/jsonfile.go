// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// JSONFile stores the state as a single JSON document.
type JSONFile struct {
	path string
	fs   afero.Fs
}

var _ store.Persister = (*JSONFile)(nil)

// NewJSONFile returns a persister for path on the filesystem returned by FsFactory.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{
		path: path,
		fs:   FsFactory(),
	}
}

// Path returns the data file location.
func (j *JSONFile) Path() string {
	return j.path
}

// Load reads the data file. A missing or empty file is an empty state.
func (j *JSONFile) Load(ctx context.Context) (store.State, error) {
	data, err := afero.ReadFile(j.fs, j.path)
	if errors.Is(err, os.ErrNotExist) {
		ctxlog.Debug(ctx, "data file does not exist yet", "path", j.path)
		return store.NewState(), nil
	}

	if err != nil {
		return store.State{}, errors.Join(ErrLoad, err)
	}

	state, err := Decode(data, FormatJSON)
	if err != nil {
		return store.State{}, errors.Join(ErrLoad, err)
	}

	return state, nil
}

// Save writes the state to a sibling temporary file, syncs it and renames it over
// the data file, so a crash leaves either the old or the new content.
func (j *JSONFile) Save(ctx context.Context, state store.State) error {
	data, err := Encode(state, FormatJSON)
	if err != nil {
		return errors.Join(ErrSave, err)
	}

	if err := j.fs.MkdirAll(filepath.Dir(j.path), dirPerm); err != nil {
		return errors.Join(ErrSave, err)
	}

	tmp := j.path + ".tmp"

	if err := j.writeSynced(tmp, data); err != nil {
		_ = j.fs.Remove(tmp)
		return errors.Join(ErrSave, err)
	}

	if err := j.fs.Rename(tmp, j.path); err != nil {
		_ = j.fs.Remove(tmp)
		return errors.Join(ErrSave, err)
	}

	ctxlog.Debug(ctx, "data file saved", "path", j.path, "bytes", len(data))

	return nil
}

func (j *JSONFile) writeSynced(name string, data []byte) error {
	f, err := j.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
