// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the cmdgroups command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/cmdgroups"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/command"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/data"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/exec"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/group"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/run"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/show"
	"github.com/matt-FFFFFF/cmdgroups/internal/color"
	"github.com/matt-FFFFFF/cmdgroups/internal/config"
	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/runner"
	"github.com/matt-FFFFFF/cmdgroups/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	dataFileFlag = "data-file"
	storeFlag    = "store"
	timeoutFlag  = "timeout"
	noColorFlag  = "no-color"

	timeoutEnvVar = "CMDGROUPS_TIMEOUT"

	// exitInterrupted is the conventional status for a process stopped by SIGINT.
	exitInterrupted = 130
)

// newRootCmd builds the command tree writing normal output to stdout and errors to stderr.
func newRootCmd(stdout, stderr io.Writer) *cli.Command {
	var state *cmdstate.State

	return &cli.Command{
		Commands: []*cli.Command{
			group.NewCmd(),
			command.NewCmd(),
			exec.NewCmd(),
			run.NewCmd(),
			show.NewCmd(),
			data.NewCmd(),
		},
		Writer:    stdout,
		ErrWriter: stderr,
		Name:      "cmdgroups",
		Description: `cmdgroups keeps named groups of shell command lines and runs them on demand.
A group runs its commands one after the other and reports one result per command;
a failing command never stops the rest. Commands can also be started detached,
in the background, without waiting for them.

Groups are saved after every change, by default in command_groups.json under the
user configuration directory.`,
		Usage:     "cmdgroups run my-group",
		Version:   fmt.Sprintf("%s (commit: %s)", cmdgroups.Version, cmdgroups.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      dataFileFlag,
				Usage:     "Location of the data file",
				TakesFile: true,
				Sources:   cli.EnvVars(config.DataFileEnvVar),
			},
			&cli.StringFlag{
				Name:    storeFlag,
				Usage:   "Storage backend, json or sqlite",
				Value:   string(config.BackendJSON),
				Sources: cli.EnvVars(config.BackendEnvVar),
			},
			&cli.DurationFlag{
				Name:    timeoutFlag,
				Usage:   "Time limit for each synchronous command",
				Value:   runner.DefaultTimeout,
				Sources: cli.EnvVars(timeoutEnvVar),
			},
			&cli.BoolFlag{
				Name:  noColorFlag,
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool(noColorFlag) {
				color.Force(false)
			}

			backend, err := config.ParseBackend(cmd.String(storeFlag))
			if err != nil {
				return ctx, cmdstate.Fail(err)
			}

			state, err = cmdstate.Open(ctx, config.Config{
				DataFile: cmd.String(dataFileFlag),
				Backend:  backend,
			}, cmd.Duration(timeoutFlag))
			if err != nil {
				return ctx, cmdstate.Fail(err)
			}

			return cmdstate.WithState(ctx, state), nil
		},
		After: func(ctx context.Context, _ *cli.Command) error {
			if err := state.Close(); err != nil {
				ctxlog.Warn(ctx, "failed to close store", "error", err)
			}

			return nil
		},
		// Exit codes are handled by main so the command tree can be run from tests.
		ExitErrHandler:        func(context.Context, *cli.Command, error) {},
		EnableShellCompletion: true,
	}
}

// exit ends the process. Tests replace it.
var exit = os.Exit

// abortFunc returns what runs on a repeated signal. Running commands are not waited
// for: the process exits straight away with exitInterrupted.
func abortFunc(ctx context.Context, cancel context.CancelFunc) func() {
	return func() {
		cancel()
		ctxlog.Error(ctx, "interrupted, exiting without waiting for running commands")
		exit(exitInterrupted)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, abortFunc(ctx, cancel))

	err := newRootCmd(os.Stdout, os.Stderr).Run(ctx, os.Args)

	code := exitCode(err)

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())

		code = exitInterrupted
	}

	if msg := exitMessage(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg) //nolint:errcheck
	}

	cancel()
	os.Exit(code)
}

// exitCode maps an error returned by the command tree to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return 1
}

func exitMessage(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
