// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements running every command of a group.
package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/matt-FFFFFF/cmdgroups/internal/color"
	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/progress"
	"github.com/matt-FFFFFF/cmdgroups/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const (
	groupArg      = "group"
	outFlag       = "out"
	jsonFlag      = "json"
	progressFlag  = "progress"
	detailsFlag   = "details"
	quietFlag     = "quiet"
	cliExitStr    = ""
	progressQueue = 64
)

// ErrWriteResults is returned when the results file cannot be written.
var ErrWriteResults = errors.New("failed to write results file")

// NewCmd returns the "run" command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run every command of a group in order",
		Description: `Run the commands of a group one after the other, in the order they were added.
A failing command does not stop the group: every command runs and gets one result.
The exit status is 1 when any command failed.

To keep the results, write them to a file with --out and display them later with "show".`,
		ArgsUsage: "GROUP",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: groupArg},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      outFlag,
				Aliases:   []string{"o"},
				Usage:     "Also save the results to this file",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print the results as a JSON list of {name, output}",
			},
			&cli.BoolFlag{
				Name:    progressFlag,
				Aliases: []string{"p"},
				Usage:   "Print a line to stderr as each command starts and finishes",
			},
			&cli.BoolFlag{
				Name:  detailsFlag,
				Usage: "Include command lines and run times in the output",
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{"q"},
				Usage:   "Do not print the output of successful commands",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromContext(ctx)
	if err != nil {
		return err
	}

	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	g, err := st.Store.Find(cmd.StringArg(groupArg))
	if err != nil {
		return cmdstate.Fail(err)
	}

	var opts []runbatch.Option

	if cmd.Bool(progressFlag) {
		reporter := progress.NewChannelReporter(ctx, progressQueue)
		reporter.Listen(progress.NewWriterListener(errWriter(cmd)))

		defer reporter.Close()

		opts = append(opts, runbatch.WithReporter(reporter))
	}

	res, err := st.Orchestrator(opts...).RunGroup(ctx, g.ID)
	if err != nil {
		return cmdstate.Fail(err)
	}

	if out := cmd.String(outFlag); out != "" {
		if err := writeResultsFile(out, res); err != nil {
			return cmdstate.Fail(err)
		}

		logger.Info("results written", "file", out)
	}

	w := cmdstate.Out(cmd)

	if cmd.Bool(jsonFlag) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(res.Outcomes()); err != nil {
			return cmdstate.Fail(err)
		}
	} else {
		fmt.Fprintf(w, "%s %s\n", color.Colorize("Group", color.Faint), color.Colorize(g.Name, color.Bold)) //nolint:errcheck

		outputOpts := runbatch.DefaultOutputOptions()
		outputOpts.IncludeOutput = !cmd.Bool(quietFlag)
		outputOpts.ShowCommandLine = cmd.Bool(detailsFlag)
		outputOpts.ShowDuration = cmd.Bool(detailsFlag)

		if err := res.WriteTextWithOptions(w, outputOpts); err != nil {
			return cmdstate.Fail(err)
		}
	}

	if res.HasError() {
		logger.Error(fmt.Sprintf("%d of %d commands failed", res.ErrorCount(), len(res)))
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func writeResultsFile(name string, res runbatch.Results) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	if err := runbatch.WriteBinary(f, res); err != nil {
		_ = f.Close()
		return errors.Join(ErrWriteResults, err)
	}

	if err := f.Close(); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
