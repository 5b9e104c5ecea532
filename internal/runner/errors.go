// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"time"
)

// The messages below are shown to users verbatim, hence the capitals.
var (
	// ErrLaunch is returned when the operating system could not create the process.
	ErrLaunch = errors.New("Failed to start command") //nolint:staticcheck
	// ErrExecution is returned when the process exits with a non-zero status.
	ErrExecution = errors.New("Command failed") //nolint:staticcheck
	// ErrTimeout is returned when the process did not exit within the timeout.
	ErrTimeout = errors.New("Command timed out") //nolint:staticcheck
	// ErrFailedToCreatePipe is returned when an operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
)

// ExitError reports a process that ran and exited with a non-zero status.
// It matches ErrExecution with errors.Is.
type ExitError struct {
	ExitCode int    // Exit code, -1 if the process was terminated by a signal.
	Stderr   string // Captured standard error, leniently decoded.
}

func (e *ExitError) Error() string {
	return ErrExecution.Error() + ": " + e.Stderr
}

func (e *ExitError) Unwrap() error {
	return ErrExecution
}

// TimeoutError reports a process that was still running when the timeout elapsed.
// It matches ErrTimeout with errors.Is.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %s", ErrTimeout, humanDuration(e.After))
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

func launchError(err error) error {
	return fmt.Errorf("%w: %w", ErrLaunch, err)
}

// humanDuration prints whole seconds as "30 seconds" and anything else in Go notation.
func humanDuration(d time.Duration) string {
	if d%time.Second != 0 {
		return d.String()
	}

	if s := int64(d / time.Second); s != 1 {
		return fmt.Sprintf("%d seconds", s)
	}

	return "1 second"
}
