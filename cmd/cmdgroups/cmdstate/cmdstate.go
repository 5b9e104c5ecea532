// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate carries the opened store and runner from the root command to its
// subcommands through the context.
package cmdstate

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/matt-FFFFFF/cmdgroups/internal/config"
	"github.com/matt-FFFFFF/cmdgroups/internal/runbatch"
	"github.com/matt-FFFFFF/cmdgroups/internal/runner"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
	"github.com/urfave/cli/v3"
)

// ErrNoState is returned when a subcommand runs without the root command's setup.
var ErrNoState = errors.New("application state not initialised")

type ctxKey struct{}

// State is what every subcommand works with.
type State struct {
	Config config.Config
	Store  *store.Store
	Runner *runner.Runner
	close  func() error
}

// Open opens the store described by cfg and builds a runner with the given timeout.
// Config.DataFile is empty when the store could not be persisted.
func Open(ctx context.Context, cfg config.Config, timeout time.Duration) (*State, error) {
	opened, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &State{
		Config: opened.Config,
		Store:  opened.Store,
		Runner: runner.New(runner.WithTimeout(timeout)),
		close:  opened.Close,
	}, nil
}

// Close releases the store backend.
func (s *State) Close() error {
	if s == nil || s.close == nil {
		return nil
	}

	return s.close()
}

// Orchestrator returns an orchestrator over the store and runner.
func (s *State) Orchestrator(opts ...runbatch.Option) *runbatch.Orchestrator {
	return runbatch.New(s.Store, s.Runner, opts...)
}

// WithState stores s in ctx.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the state stored by WithState.
func FromContext(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(ctxKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNoState
	}

	return s, nil
}

// Out returns the writer for normal command output.
func Out(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

// Fail turns err into an exit error with status 1.
func Fail(err error) error {
	return cli.Exit(err.Error(), 1)
}
