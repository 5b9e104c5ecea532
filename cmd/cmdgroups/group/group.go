// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package group implements the "group" command and its subcommands.
package group

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/matt-FFFFFF/cmdgroups/internal/color"
	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/prompt"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	nameArg  = "name"
	groupArg = "group"
	jsonFlag = "json"
	yesFlag  = "yes"
)

// NewCmd returns the "group" command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "group",
		Usage: "Create, list, show and delete command groups",
		Commands: []*cli.Command{
			createCmd(),
			listCmd(),
			showCmd(),
			deleteCmd(),
		},
	}
}

func createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create an empty group and print its ID",
		ArgsUsage: "NAME",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: nameArg},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			id, err := st.Store.CreateGroup(ctx, cmd.StringArg(nameArg))
			if err != nil {
				return cmdstate.Fail(err)
			}

			fmt.Fprintln(cmdstate.Out(cmd), id) //nolint:errcheck

			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all groups",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print the groups as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			groups := st.Store.List()
			w := cmdstate.Out(cmd)

			if cmd.Bool(jsonFlag) {
				return writeJSON(w, groups)
			}

			if len(groups) == 0 {
				fmt.Fprintln(w, "No groups.") //nolint:errcheck
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOMMANDS") //nolint:errcheck

			for _, g := range groups {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", g.ID, g.Name, len(g.Commands)) //nolint:errcheck
			}

			return tw.Flush()
		},
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the commands of a group",
		ArgsUsage: "GROUP",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: groupArg},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print the group as JSON",
			},
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

			if cmd.Bool(jsonFlag) {
				return writeJSON(cmdstate.Out(cmd), g)
			}

			return WriteGroup(cmdstate.Out(cmd), g)
		},
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a group and all of its commands",
		ArgsUsage: "GROUP",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: groupArg},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    yesFlag,
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
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

			if !cmd.Bool(yesFlag) {
				question := fmt.Sprintf("Delete group %q with %d command(s)?", g.Name, len(g.Commands))

				ok, err := prompt.Confirm(question)
				if err != nil || !ok {
					ctxlog.Debug(ctx, "delete not confirmed", "error", err)
					fmt.Fprintln(cmdstate.Out(cmd), "Aborted") //nolint:errcheck

					return nil
				}
			}

			if err := st.Store.DeleteGroup(ctx, g.ID); err != nil {
				return cmdstate.Fail(err)
			}

			fmt.Fprintf(cmdstate.Out(cmd), "Deleted group %s\n", g.ID) //nolint:errcheck

			return nil
		},
	}
}

// WriteGroup prints a group header followed by one line per command.
func WriteGroup(w io.Writer, g store.Group) error {
	fmt.Fprintf(w, "%s %s\n", color.Colorize(g.Name, color.Bold), color.Colorize("("+g.ID+")", color.Faint)) //nolint:errcheck

	if len(g.Commands) == 0 {
		_, err := fmt.Fprintln(w, "  no commands")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, c := range g.Commands {
		mode := "sync"
		if c.Detached {
			mode = "detached"
		}

		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\t%s\n", i+1, c.ID, c.Name, mode, c.CommandLine) //nolint:errcheck
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
