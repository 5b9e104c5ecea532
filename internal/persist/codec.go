// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
)

// Format is a serialisation format for a store.State.
type Format string

const (
	// FormatJSON is the data file format.
	FormatJSON Format = "json"
	// FormatYAML is accepted for export and import.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. It accepts "yml" as an alias of "yaml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
// A go-getter query string such as "?ref=main" is ignored.
func FormatFromPath(path string) Format {
	path, _, _ = strings.Cut(path, "?")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serialises state. JSON is indented by two spaces.
func Encode(state store.State, f Format) ([]byte, error) {
	if state.Groups == nil {
		state = store.NewState()
	}

	var (
		data []byte
		err  error
	)

	switch f {
	case FormatJSON:
		data, err = json.MarshalIndent(state, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(state)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	return data, nil
}

// Decode parses a blob. Empty input yields an empty state.
func Decode(data []byte, f Format) (store.State, error) {
	state := store.NewState()

	if len(bytes.TrimSpace(data)) == 0 {
		return state, nil
	}

	var err error

	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &state)
	case FormatYAML:
		err = yaml.Unmarshal(data, &state)
	default:
		return store.State{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if err != nil {
		return store.State{}, errors.Join(ErrDecode, err)
	}

	if state.Groups == nil {
		state.Groups = make(map[string]store.Group)
	}

	for id, g := range state.Groups {
		if g.Commands == nil {
			g.Commands = []store.Command{}
			state.Groups[id] = g
		}
	}

	return state, nil
}
