// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar is the environment variable read for the default log level.
const LevelEnvVar = "CMDGROUPS_LOG_LEVEL"

type loggerKey struct{}

// LevelVar is the level shared by DefaultLogger and JSONLogger.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is the logger used when the context does not carry one.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger writes JSON lines to stderr at the shared level.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a copy of ctx carrying logger.
// A nil logger stores DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or DefaultLogger if there is none.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// With returns a copy of ctx whose logger has the given attributes added.
func With(ctx context.Context, args ...any) context.Context {
	return New(ctx, Logger(ctx).With(args...))
}

// Debug logs at debug level using the logger from ctx.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Info logs at info level using the logger from ctx.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Warn logs at warn level using the logger from ctx.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs at error level using the logger from ctx.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

// ParseLevel converts a level name into a slog.Level.
// Unknown names map to slog.LevelWarn.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func logLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnvVar))
}
