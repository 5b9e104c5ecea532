// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
)

const (
	// DefaultTimeout bounds every RunSync call.
	DefaultTimeout = 30 * time.Second
	// DetachedAck is returned by RunDetached once the process exists.
	DetachedAck = "Process started successfully in background"
)

// Runner executes command lines through the platform shell.
// The zero value is not usable, use New.
type Runner struct {
	shell   string
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout overrides DefaultTimeout. Values <= 0 are ignored.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithShell overrides the interpreter path.
func WithShell(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.shell = path
		}
	}
}

// New returns a Runner using the platform shell and DefaultTimeout.
func New(opts ...Option) *Runner {
	r := &Runner{
		shell:   defaultShell(),
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Timeout returns the bound applied to RunSync.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// RunSync runs commandLine and waits for it to exit.
//
// On exit status 0 it returns the captured standard output. A non-zero exit yields an
// *ExitError carrying standard error, a process that cannot be created yields an error
// matching ErrLaunch and a process still running after the timeout yields a *TimeoutError.
//
// Cancellation of ctx is ignored; only its values are used.
func (r *Runner) RunSync(ctx context.Context, commandLine string) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	logger := ctxlog.Logger(ctx).With("runnableType", "sync")
	logger.Debug("command info", "shell", r.shell, "commandLine", commandLine, "timeout", r.timeout)

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return "", launchError(errors.Join(ErrFailedToCreatePipe, err))
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return "", launchError(errors.Join(ErrFailedToCreatePipe, err))
	}

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		closeAll(rOut, wOut, rErr, wErr)
		return "", launchError(err)
	}

	ps, err := os.StartProcess(r.shell, shellArgs(r.shell, commandLine), &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{stdin, wOut, wErr},
		Sys:   syncSysProcAttr(r.shell, commandLine),
	})

	// The child holds its own copies of the write ends. Ours must go so the
	// readers see EOF when the child exits.
	closeAll(stdin, wOut, wErr)

	if err != nil {
		closeAll(rOut, rErr)
		logger.Debug("process could not be started", "error", err)

		return "", launchError(err)
	}

	logger = logger.With("pid", ps.Pid)
	logger.Debug("process started")

	var (
		state   *os.ProcessState
		waitErr error
		stdout  captured
		stderr  captured
	)

	finished := make(chan struct{})

	go func() {
		defer close(finished)

		var wg sync.WaitGroup

		wg.Add(2)

		go func() {
			defer wg.Done()

			stdout = readAllUpToMax(rOut, maxBufferSize)
		}()

		go func() {
			defer wg.Done()

			stderr = readAllUpToMax(rErr, maxBufferSize)
		}()

		state, waitErr = ps.Wait()

		wg.Wait()
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		logger.Info("timeout exceeded, killing process group", "timeout", r.timeout)

		if err := killProcessGroup(ps); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logger.Error("process kill error", "error", err)
		}

		// Something outside the group may still hold the pipes open.
		closeAll(rOut, rErr)
		<-finished

		return "", &TimeoutError{After: r.timeout}
	}

	closeAll(rOut, rErr)

	for name, c := range map[string]captured{"stdout": stdout, "stderr": stderr} {
		if c.discarded > 0 {
			logger.Warn("output truncated", "stream", name, "maxBytes", maxBufferSize, "discardedBytes", c.discarded)
		}

		if c.err != nil {
			logger.Warn("output read error", "stream", name, "error", c.err)
		}
	}

	if waitErr != nil {
		return "", &ExitError{ExitCode: -1, Stderr: waitErr.Error()}
	}

	logger.Debug("process finished", "exitCode", state.ExitCode())

	if !state.Success() {
		return "", &ExitError{ExitCode: state.ExitCode(), Stderr: decode(stderr.data)}
	}

	return decode(stdout.data), nil
}

// RunDetached starts commandLine with its standard streams on the null device and
// returns DetachedAck as soon as the process exists. The process is not waited for,
// tracked or killed.
func (r *Runner) RunDetached(ctx context.Context, commandLine string) (string, error) {
	logger := ctxlog.Logger(ctx).With("runnableType", "detached")
	logger.Debug("command info", "shell", r.shell, "commandLine", commandLine)

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return "", launchError(err)
	}

	defer devNull.Close() //nolint:errcheck

	ps, err := os.StartProcess(r.shell, shellArgs(r.shell, commandLine), &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{devNull, devNull, devNull},
		Sys:   detachedSysProcAttr(r.shell, commandLine),
	})
	if err != nil {
		logger.Debug("process could not be started", "error", err)
		return "", launchError(err)
	}

	logger.Info("detached process started", "pid", ps.Pid)

	if err := ps.Release(); err != nil {
		logger.Debug("process release error", "error", err)
	}

	return DetachedAck, nil
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
