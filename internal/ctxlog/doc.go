// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes human readable lines to stderr through PrettyHandler.
// Its level is shared through LevelVar and is read from the CMDGROUPS_LOG_LEVEL
// environment variable at start up ("DEBUG", "INFO", "WARN" or "ERROR", default "WARN").
package ctxlog
