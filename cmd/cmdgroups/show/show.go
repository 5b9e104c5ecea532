// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements displaying results saved by "run --out".
package show

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/cmdgroups/cmd/cmdgroups/cmdstate"
	"github.com/matt-FFFFFF/cmdgroups/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const (
	fileArg     = "file"
	detailsFlag = "details"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrWriteResults is returned when the results cannot be written to stdout.
	ErrWriteResults = errors.New("failed to write results to stdout")
)

// NewCmd returns the "show" command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show previously saved results",
		ArgsUsage: "FILE",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  detailsFlag,
				Usage: "Include command lines and run times in the output",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			file, err := os.Open(cmd.StringArg(fileArg))
			if err != nil {
				return cmdstate.Fail(errors.Join(ErrReadFile, err))
			}

			defer file.Close() // nolint:errcheck

			results, err := runbatch.ReadBinary(file)
			if err != nil {
				return cmdstate.Fail(err)
			}

			opts := runbatch.DefaultOutputOptions()
			opts.ShowCommandLine = cmd.Bool(detailsFlag)
			opts.ShowDuration = cmd.Bool(detailsFlag)

			if err := results.WriteTextWithOptions(cmdstate.Out(cmd), opts); err != nil {
				return cmdstate.Fail(errors.Join(ErrWriteResults, err))
			}

			return nil
		},
	}
}
