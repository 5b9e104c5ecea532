// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package command implements adding commands to and removing them from a group.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/urfave/cli/v3"
)

const (
	groupArg       = "group"
	nameArg        = "name"
	commandLineArg = "commandline"
	commandIDArg   = "commandid"
	detachedFlag   = "detached"
)

// ErrEmptyCommandLine is returned by "command add" without a command line.
var ErrEmptyCommandLine = errors.New("command line must not be empty")

// NewCmd returns the "command" command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:    "command",
		Aliases: []string{"cmd"},
		Usage:   "Add commands to a group or remove them",
		Commands: []*cli.Command{
			addCmd(),
			removeCmd(),
		},
	}
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Append a command to a group and print its ID",
		Description: `Append a command to the end of a group. Commands run in the order they were added.
The command line is run by the platform shell, so quote it as one argument:

  cmdgroups command add builds test "go test ./... && echo done"

A detached command is started in the background and never waited for.`,
		ArgsUsage: "GROUP NAME COMMANDLINE",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: groupArg},
			&cli.StringArg{Name: nameArg},
			&cli.StringArg{Name: commandLineArg},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    detachedFlag,
				Aliases: []string{"d"},
				Usage:   "Start the command in the background when the group runs",
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

			g, err := st.Store.Find(cmd.StringArg(groupArg))
			if err != nil {
				return cmdstate.Fail(err)
			}

			id, err := st.Store.AddCommand(ctx, g.ID, cmd.StringArg(nameArg), line, cmd.Bool(detachedFlag))
			if err != nil {
				return cmdstate.Fail(err)
			}

			fmt.Fprintln(cmdstate.Out(cmd), id) //nolint:errcheck

			return nil
		},
	}
}

func removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove a command from a group",
		ArgsUsage: "GROUP COMMANDID",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: groupArg},
			&cli.StringArg{Name: commandIDArg},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			g, err := st.Store.Find(cmd.StringArg(groupArg))
			if err != nil {
				return cmdstate.Fail(err)
			}

			if err := st.Store.RemoveCommand(ctx, g.ID, cmd.StringArg(commandIDArg)); err != nil {
				return cmdstate.Fail(err)
			}

			fmt.Fprintf(cmdstate.Out(cmd), "Removed command %s\n", cmd.StringArg(commandIDArg)) //nolint:errcheck

			return nil
		},
	}
}
