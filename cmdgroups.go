// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdgroups provides the version and commit information for the cmdgroups application.
package cmdgroups

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)
