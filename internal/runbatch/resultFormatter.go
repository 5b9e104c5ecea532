// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/cmdgroups/internal/color"
)

var errWrite = errors.New("failed to write results")

// OutputOptions controls what is included in the text output.
type OutputOptions struct {
	IncludeOutput   bool // Show the standard output of successful commands
	ShowCommandLine bool // Show the command line under each label
	ShowDuration    bool // Append the run time to each label
}

// DefaultOutputOptions shows the output of successful commands.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeOutput: true,
	}
}

// WriteText renders results as one status line per command followed by its details.
func WriteText(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	sb := &strings.Builder{}

	for _, r := range results {
		writeResult(sb, r, options)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Join(errWrite, err)
	}

	return nil
}

func writeResult(sb *strings.Builder, r *Result, options *OutputOptions) {
	var statusStr, labelPrefix string

	switch r.Status {
	case ResultStatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	case ResultStatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	case ResultStatusDetached:
		statusStr = color.Colorize("»", color.FgBlue)
		labelPrefix = color.ControlString(color.Bold, color.FgBlue)
	default:
		statusStr = color.Colorize("?", color.FgWhite)
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	fmt.Fprintf(sb, "%s %s%s%s", statusStr, labelPrefix, label, color.ControlString(color.Reset))

	if r.Status == ResultStatusError && r.ExitCode > 0 {
		fmt.Fprintf(sb, " (exit code: %d)", r.ExitCode)
	}

	if r.Status == ResultStatusDetached {
		sb.WriteString(" (detached)")
	}

	if options.ShowDuration {
		fmt.Fprintf(sb, " [%s]", r.Duration.Round(time.Millisecond))
	}

	sb.WriteString("\n")

	if options.ShowCommandLine && r.CommandLine != "" {
		fmt.Fprintf(sb, "  %s %s\n", color.Colorize("$", color.Faint), r.CommandLine)
	}

	switch r.Status {
	case ResultStatusError:
		msg, details, _ := strings.Cut(r.ErrorText, "\n")
		fmt.Fprintf(sb, "  %s %s%s\n",
			color.ColorizeNoReset("➜ Error:", color.FgRed), msg, color.ControlString(color.Reset))

		if details != "" {
			sb.WriteString(formatOutput(details, "     "))
		}
	case ResultStatusSuccess:
		if options.IncludeOutput && r.Output != "" {
			sb.WriteString("  ➜ Output:\n")
			sb.WriteString(formatOutput(r.Output, "     "))
		}
	}
}

// formatOutput indents every non-empty line of output.
func formatOutput(output string, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	sb.Grow(len(output) + len(lines)*len(indent) + 1)

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
