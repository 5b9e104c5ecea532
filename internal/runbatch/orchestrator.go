// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"time"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdgroups/internal/progress"
	"github.com/matt-FFFFFF/cmdgroups/internal/runner"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
)

// GroupGetter looks up a group. It must return an error matching
// store.ErrGroupNotFound for unknown IDs.
type GroupGetter interface {
	Get(groupID string) (store.Group, error)
}

// CommandRunner executes a single command line.
type CommandRunner interface {
	RunSync(ctx context.Context, commandLine string) (string, error)
	RunDetached(ctx context.Context, commandLine string) (string, error)
}

// Orchestrator runs groups from a GroupGetter with a CommandRunner.
// It holds no per-run state and may be used from many goroutines.
type Orchestrator struct {
	store    GroupGetter
	runner   CommandRunner
	reporter progress.Reporter
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithReporter sends an event for every command start and finish to r.
func WithReporter(r progress.Reporter) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.reporter = r
		}
	}
}

// New returns an Orchestrator.
func New(groups GroupGetter, r CommandRunner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    groups,
		runner:   r,
		reporter: progress.NewNullReporter(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// RunOne runs a single command line, detached or not, and returns the runner's answer unchanged.
func (o *Orchestrator) RunOne(ctx context.Context, commandLine string, detached bool) (string, error) {
	if detached {
		return o.runner.RunDetached(ctx, commandLine)
	}

	return o.runner.RunSync(ctx, commandLine)
}

// RunGroup runs every command of the group in definition order and returns one Result
// per command in the same order. Cancelling ctx does not stop the batch.
func (o *Orchestrator) RunGroup(ctx context.Context, groupID string) (Results, error) {
	g, err := o.store.Get(groupID)
	if err != nil {
		return nil, err
	}

	ctx = ctxlog.With(context.WithoutCancel(ctx), "groupID", g.ID, "group", g.Name)
	ctxlog.Info(ctx, "running group", "commands", len(g.Commands))

	results := make(Results, 0, len(g.Commands))

	for _, c := range g.Commands {
		results = append(results, o.runCommand(ctx, g.Name, c))
	}

	ctxlog.Info(ctx, "group finished", "failed", results.ErrorCount())

	return results, nil
}

func (o *Orchestrator) runCommand(ctx context.Context, group string, c store.Command) *Result {
	logger := ctxlog.Logger(ctx).With("commandID", c.ID, "command", c.Name)
	start := time.Now()

	o.reporter.Report(progress.Event{
		Group:     group,
		Command:   c.Name,
		Type:      progress.EventStarted,
		Message:   "Starting " + c.Name,
		Timestamp: start,
	})

	out, err := o.RunOne(ctx, c.CommandLine, c.Detached)

	res := &Result{
		Label:       c.Name,
		CommandID:   c.ID,
		CommandLine: c.CommandLine,
		Detached:    c.Detached,
		Output:      out,
		Duration:    time.Since(start),
	}

	event := progress.Event{
		Group:     group,
		Command:   c.Name,
		Timestamp: time.Now(),
		Data:      progress.EventData{Duration: res.Duration},
	}

	switch {
	case err != nil:
		res.setError(err)
		event.Type = progress.EventFailed
		event.Message = "Failed " + c.Name
		event.Data.Error = res.ErrorText
		logger.Debug("command failed", "exitCode", res.ExitCode, "error", err)
	case c.Detached:
		res.Status = ResultStatusDetached
		event.Type = progress.EventDetached
		event.Message = "Started " + c.Name + " in background"
		logger.Debug("command detached")
	default:
		res.Status = ResultStatusSuccess
		event.Type = progress.EventCompleted
		event.Message = "Finished " + c.Name
		logger.Debug("command succeeded", "duration", res.Duration)
	}

	o.reporter.Report(event)

	return res
}

func exitCodeOf(err error) int {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}

	return -1
}
