// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	subdirSeparator = "//"
	querySeparator  = "?"
	// A source with a subdirectory has at least a scheme, a host and a path part.
	minSubdirParts = 3
)

// Fetch returns the bytes that "data import" decodes.
//
// src is tried as a path on FsFactory first. Otherwise it goes to go-getter: a
// source naming a file inside a repository or archive, such as
// "git::https://host/repo//groups.yaml?ref=main", is downloaded as a directory and
// the file read from it; any other source, such as "https://host/groups.json", is
// downloaded as a single file.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrFetch)
	}

	fs := FsFactory()

	if ok, _ := afero.Exists(fs, src); ok {
		data, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, errors.Join(ErrFetch, err)
		}

		return data, nil
	}

	tmpDir, err := os.MkdirTemp("", "cmdgroups-import-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "import"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	dir, file := splitSubdir(src)
	if file != "" {
		req.Src = dir
		req.GetMode = getter.ModeDir
	}

	ctxlog.Debug(ctx, "downloading import source", "src", req.Src, "file", file)

	client := getter.Client{DisableSymlinks: true}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	path := res.Dst
	if file != "" {
		path = filepath.Join(res.Dst, file)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return data, nil
}

// splitSubdir splits "scheme::host//dir/file?query" into "scheme::host//dir?query"
// and "file". Both are empty when src has no subdirectory part or the part does not
// end in a file name.
func splitSubdir(src string) (string, string) {
	parts := strings.Split(src, subdirSeparator)
	if len(parts) < minSubdirParts {
		return "", ""
	}

	last, query, _ := strings.Cut(parts[len(parts)-1], querySeparator)
	if last == "" || strings.HasSuffix(last, "/") {
		return "", ""
	}

	file := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	dir := strings.Join(parts, subdirSeparator)
	if query != "" {
		dir += querySeparator + query
	}

	return dir, file
}
