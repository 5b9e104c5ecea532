// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

// ChannelReporter buffers events in a channel. It is safe for concurrent use.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

// NewChannelReporter creates a ChannelReporter with the given buffer size.
// Events reported while the buffer is full are dropped.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report queues the event without blocking.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	case <-cr.ctx.Done():
	default:
	}
}

// Close stops accepting events and waits for listeners to drain what is buffered.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.mu.Lock()
		cr.closed = true
		close(cr.ch)
		cr.mu.Unlock()

		cr.wg.Wait()
		cr.cancel()
	})
}

// Listen forwards events to listener from a new goroutine until the reporter is
// closed or its context is cancelled.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Events exposes the channel for callers that do not use a Listener.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
