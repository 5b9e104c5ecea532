// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"

	"github.com/matt-FFFFFF/cmdgroups/internal/store"
)

var (
	// ErrGroupNotFound is returned by RunGroup for an unknown group ID. Nothing is run.
	// It is the store's sentinel so callers can match either name.
	ErrGroupNotFound = store.ErrGroupNotFound
	// ErrWriteBinary is returned when results cannot be written in binary form.
	ErrWriteBinary = errors.New("failed to write binary results")
	// ErrReadBinary is returned when a results file cannot be read.
	ErrReadBinary = errors.New("failed to read binary results")
)
