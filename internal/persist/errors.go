// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package persist

import "errors"

var (
	// ErrLoad is returned when the saved state cannot be read.
	ErrLoad = errors.New("failed to load data")
	// ErrSave is returned when the state cannot be written.
	ErrSave = errors.New("failed to save data")
	// ErrEncode is returned when the state cannot be serialised.
	ErrEncode = errors.New("failed to serialize data")
	// ErrDecode is returned when a blob cannot be parsed.
	ErrDecode = errors.New("failed to parse data")
	// ErrInvalidState is returned by Validate.
	ErrInvalidState = errors.New("invalid data")
	// ErrUnknownFormat is returned for an unsupported serialisation format.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrFetch is returned when an import source cannot be retrieved.
	ErrFetch = errors.New("failed to get import source")
)
