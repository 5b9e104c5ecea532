// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func runWatch(ctx context.Context, sigCh chan os.Signal, abort func()) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, abort)
	}()

	return done
}

func TestWatch_FirstSignalNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	done := runWatch(ctx, sigCh, abort)

	sigCh <- os.Interrupt

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should not be cancelled after the first signal")

	close(sigCh)
	<-done
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	done := runWatch(ctx, sigCh, abort)

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not return after the second signal")
	}

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWatch_DifferentSignalsNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	done := runWatch(ctx, sigCh, abort)

	sigCh <- os.Interrupt
	sigCh <- os.Kill

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "different signals should not cancel")

	close(sigCh)
	<-done
}

func TestWatch_ReturnsWhenContextDone(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := runWatch(ctx, make(chan os.Signal), cancel)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not return after context cancellation")
	}
}
