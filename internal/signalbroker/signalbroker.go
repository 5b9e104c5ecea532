// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker subscribes to the signals that should stop the CLI.
//
// Running commands live in their own process groups, so an interactive Ctrl+C
// reaches only cmdgroups itself. The first signal of a kind is logged and
// ignored so a batch can finish. The second one aborts the process.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
)

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

// New returns a channel subscribed to sigs, or to SIGINT and SIGTERM when none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop unsubscribes ch from all signals.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
