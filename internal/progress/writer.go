// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/matt-FFFFFF/cmdgroups/internal/color"
)

// WriterListener prints one line per event.
type WriterListener struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterListener returns a Listener that writes to w.
func NewWriterListener(w io.Writer) *WriterListener {
	return &WriterListener{w: w}
}

// OnEvent implements Listener.
func (l *WriterListener) OnEvent(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := e.Command
	if e.Group != "" {
		name = e.Group + " › " + e.Command
	}

	switch e.Type {
	case EventStarted:
		fmt.Fprintf(l.w, "%s Starting %s\n", color.Colorize("▶", color.FgCyan), name) //nolint:errcheck
	case EventCompleted:
		fmt.Fprintf(l.w, "%s Finished %s (%s)\n", color.Colorize("✓", color.FgGreen), name, e.Data.Duration) //nolint:errcheck
	case EventFailed:
		fmt.Fprintf(l.w, "%s Failed %s: %s\n", color.Colorize("✗", color.FgRed), name, e.Data.Error) //nolint:errcheck
	case EventDetached:
		fmt.Fprintf(l.w, "%s Started %s in background\n", color.Colorize("»", color.FgBlue), name) //nolint:errcheck
	default:
		fmt.Fprintf(l.w, "%s %s\n", name, e.Message) //nolint:errcheck
	}
}
