// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config resolves where the groups are kept and opens the store on top of it.
package config
