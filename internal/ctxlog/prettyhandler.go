// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/cmdgroups/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log lines.
const TimeFormat = "[15:04:05.000]"

// PrettyHandler is a slog.Handler that writes one human readable line per record:
// timestamp, level, message and the attributes as indented JSON.
type PrettyHandler struct {
	h                slog.Handler
	r                func([]string, slog.Attr) slog.Attr
	b                *bytes.Buffer
	m                *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// Enabled checks if the handler is enabled for the given level.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// WithAttrs creates a new handler with the given attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.clone(h.h.WithAttrs(attrs))
}

// WithGroup creates a new handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return h.clone(h.h.WithGroup(name))
}

func (h *PrettyHandler) clone(inner slog.Handler) *PrettyHandler {
	return &PrettyHandler{
		h:                inner,
		b:                h.b,
		r:                h.r,
		m:                h.m,
		writer:           h.writer,
		colour:           h.colour,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

func (h *PrettyHandler) paint(s string, c ...color.Code) string {
	if !h.colour {
		return s
	}

	return color.Paint(s, c...)
}

func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()

	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any

	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

func (h *PrettyHandler) replace(a slog.Attr) slog.Attr {
	if h.r == nil {
		return a
	}

	return h.r([]string{}, a)
}

func (h *PrettyHandler) levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelWarn:
		return color.FgBlue
	case l < slog.LevelError:
		return color.FgYellow
	case l <= slog.LevelError+1:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}

// Handle implements the slog.Handler interface for PrettyHandler.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	parts := make([]string, 0, 4)

	if a := h.replace(slog.Attr{Key: slog.TimeKey, Value: slog.StringValue(r.Time.Format(TimeFormat))}); !a.Equal(slog.Attr{}) {
		parts = append(parts, h.paint(a.Value.String(), color.FgWhite))
	}

	if a := h.replace(slog.Attr{Key: slog.LevelKey, Value: slog.AnyValue(r.Level)}); !a.Equal(slog.Attr{}) {
		parts = append(parts, h.paint(a.Value.String()+":", h.levelColour(r.Level)))
	}

	if a := h.replace(slog.Attr{Key: slog.MessageKey, Value: slog.StringValue(r.Message)}); !a.Equal(slog.Attr{}) {
		parts = append(parts, h.paint(a.Value.String(), color.FgHiWhite))
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	if h.outputEmptyAttrs || len(attrs) > 0 {
		formatter := colorjson.NewFormatter()
		formatter.Indent = 2
		formatter.DisabledColor = !h.colour

		attrsAsBytes, err := formatter.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		parts = append(parts, string(attrsAsBytes))
	}

	if _, err := io.WriteString(h.writer, strings.Join(parts, " ")+"\n"); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}

// NewPrettyHandler creates a new PrettyHandler writing to stderr unless
// WithDestinationWriter says otherwise.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	handler := &PrettyHandler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		r:      handlerOptions.ReplaceAttr,
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer for the PrettyHandler.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables color output for the PrettyHandler.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables color output when the color package detected support for it.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs makes the handler print "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}
