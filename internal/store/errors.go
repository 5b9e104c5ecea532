// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrGroupNotFound is returned when no group has the requested ID.
	ErrGroupNotFound = errors.New("group not found")
	// ErrCommandNotFound is returned when the group has no command with the requested ID.
	ErrCommandNotFound = errors.New("command not found")
	// ErrInvalidName is returned for blank group or command names.
	ErrInvalidName = errors.New("name must not be empty")
	// ErrAmbiguousGroup is returned by Find when several groups share the requested name.
	ErrAmbiguousGroup = errors.New("several groups have this name, use the group ID")
	// ErrPersist is returned when a change could not be saved. The change is not applied.
	ErrPersist = errors.New("failed to persist change")
)
