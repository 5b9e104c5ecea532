// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single update about one command of a group run.
type Event struct {
	Group     string    // Name of the group being run, empty for a single command
	Command   string    // Name of the command
	Type      EventType // What happened
	Message   string    // Human readable status message
	Timestamp time.Time // When it happened
	Data      EventData // Type specific data
}

// EventType says what happened to a command.
type EventType int

const (
	// EventStarted means a command is about to be launched.
	EventStarted EventType = iota
	// EventCompleted means a synchronous command exited with status 0.
	EventCompleted
	// EventFailed means a command could not be launched, failed or timed out.
	EventFailed
	// EventDetached means a detached command was launched and left running.
	EventDetached
)

// String implements fmt.Stringer.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// EventData holds the details that only some event types have.
type EventData struct {
	Duration time.Duration // EventCompleted, EventFailed
	Error    string        // EventFailed
}

// Reporter receives events. Report must not block.
type Reporter interface {
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener consumes events forwarded by a ChannelReporter.
type Listener interface {
	OnEvent(event Event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report does nothing.
func (NullReporter) Report(Event) {}

// Close does nothing.
func (NullReporter) Close() {}

// NewNullReporter returns a Reporter that discards every event.
func NewNullReporter() Reporter {
	return NullReporter{}
}
