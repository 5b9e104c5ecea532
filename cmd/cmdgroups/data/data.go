// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package data implements exporting, importing and locating the stored groups.
package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/persist"
	"github.com/matt-FFFFFF/cmdgroups/internal/prompt"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileArg    = "file"
	sourceArg  = "source"
	formatFlag = "format"
	yesFlag    = "yes"
	filePerm   = 0o644
)

// ErrMissingSource is returned by "data import" without a source.
var ErrMissingSource = errors.New("missing import source")

// NewCmd returns the "data" command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "data",
		Usage: "Export, import and locate the stored groups",
		Commands: []*cli.Command{
			exportCmd(),
			importCmd(),
			pathCmd(),
		},
	}
}

func formatFor(cmd *cli.Command, path string) (persist.Format, error) {
	if f := cmd.String(formatFlag); f != "" {
		return persist.ParseFormat(f)
	}

	return persist.FormatFromPath(path), nil
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write every group to a file, or to stdout",
		Description: `Export all groups and their commands. Without FILE the data is written to stdout.
The format is taken from --format, then from the file extension (.yaml or .yml), and is JSON otherwise.`,
		ArgsUsage: "[FILE]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: fileArg},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "Output format, json or yaml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			file := cmd.StringArg(fileArg)

			format, err := formatFor(cmd, file)
			if err != nil {
				return cmdstate.Fail(err)
			}

			state := st.Store.Snapshot()

			data, err := persist.Encode(state, format)
			if err != nil {
				return cmdstate.Fail(err)
			}

			if file == "" {
				_, err := cmdstate.Out(cmd).Write(data)
				return err
			}

			if err := afero.WriteFile(persist.FsFactory(), file, data, filePerm); err != nil {
				return cmdstate.Fail(err)
			}

			fmt.Fprintf(cmdstate.Out(cmd), "Exported %d group(s) to %s\n", len(state.Groups), file) //nolint:errcheck

			return nil
		},
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Replace every group with the content of a file or URL",
		Description: `Import groups exported with "data export". The current groups are replaced.

SOURCE is a local path or a URL in Hashicorp's go-getter syntax, for example
git::https://github.com/org/repo//groups.yaml?ref=main.
See https://github.com/hashicorp/go-getter.`,
		ArgsUsage: "SOURCE",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: sourceArg},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "Input format, json or yaml",
			},
			&cli.BoolFlag{
				Name:    yesFlag,
				Aliases: []string{"y"},
				Usage:   "Do not ask before replacing existing groups",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			src := cmd.StringArg(sourceArg)
			if src == "" {
				return cmdstate.Fail(ErrMissingSource)
			}

			format, err := formatFor(cmd, src)
			if err != nil {
				return cmdstate.Fail(err)
			}

			blob, err := persist.Fetch(ctx, src)
			if err != nil {
				return cmdstate.Fail(err)
			}

			state, err := persist.Decode(blob, format)
			if err != nil {
				return cmdstate.Fail(err)
			}

			if err := persist.Validate(state); err != nil {
				var merr *multierror.Error
				if errors.As(err, &merr) {
					ctxlog.Debug(ctx, "import rejected", "problems", len(merr.Errors))
				}

				return cmdstate.Fail(err)
			}

			if existing := len(st.Store.List()); existing > 0 && !cmd.Bool(yesFlag) {
				question := fmt.Sprintf("Replace %d existing group(s) with %d imported group(s)?", existing, len(state.Groups))

				ok, err := prompt.Confirm(question)
				if err != nil || !ok {
					fmt.Fprintln(cmdstate.Out(cmd), "Aborted") //nolint:errcheck
					return nil
				}
			}

			if err := st.Store.Replace(ctx, state); err != nil {
				return cmdstate.Fail(err)
			}

			fmt.Fprintf(cmdstate.Out(cmd), "Imported %d group(s)\n", len(state.Groups)) //nolint:errcheck

			return nil
		},
	}
}

func pathCmd() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print where the groups are stored",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := cmdstate.FromContext(ctx)
			if err != nil {
				return err
			}

			if st.Config.DataFile == "" {
				fmt.Fprintln(cmdstate.Out(cmd), "Data is kept in memory only") //nolint:errcheck
				return nil
			}

			fmt.Fprintf(cmdstate.Out(cmd), "Data is stored at: %s\n", st.Config.DataFile) //nolint:errcheck

			return nil
		},
	}
}
