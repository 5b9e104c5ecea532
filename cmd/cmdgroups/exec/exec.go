// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exec implements running a single command line outside of any group.
package exec

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/matt-FFFFFF/cmdgroups/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const (
	commandLineArg = "commandline"
	detachedFlag   = "detached"
)

// ErrEmptyCommandLine is returned when no command line is given.
var ErrEmptyCommandLine = errors.New("command line must not be empty")

// NewCmd returns the "exec" command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "exec",
		Usage: "Run one command line and print its output",
		Description: `Run a command line through the platform shell and print its standard output.
A failing command prints its standard error and exits with status 1.
With --detached the command is started in the background and not waited for.`,
		ArgsUsage: "COMMANDLINE",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: commandLineArg},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    detachedFlag,
				Aliases: []string{"d"},
				Usage:   "Start the command in the background",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			line := cmd.StringArg(commandLineArg)
			if line == "" {
				return cmdstate.Fail(ErrEmptyCommandLine)
			}

			out, err := st.Orchestrator().RunOne(ctx, line, cmd.Bool(detachedFlag))
			if err != nil {
				return cli.Exit(runbatch.ErrorPrefix+err.Error(), 1)
			}

			if cmd.Bool(detachedFlag) {
				fmt.Fprintln(cmdstate.Out(cmd), out) //nolint:errcheck
				return nil
			}

			fmt.Fprint(cmdstate.Out(cmd), out) //nolint:errcheck

			return nil
		},
	}
}
