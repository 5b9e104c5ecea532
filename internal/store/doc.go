// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store holds command groups in memory behind a single lock and writes
// every change through a Persister before the change becomes visible.
//
// Readers always receive deep copies. Nothing in this package runs processes,
// so the lock is only ever held for map work and the synchronous save.
package store
