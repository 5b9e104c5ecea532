// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	reset     = "\033[0m"
	prefix    = "\033["
	suffix    = "m"
	sbPadding = 16
)

// Code represents an ANSI control code for text formatting.
type Code int

// Control codes.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = isColorCapable()

// Enabled reports whether color output was detected as enabled at start up.
func Enabled() bool {
	return enabled
}

// Force overrides detection, for example for a --no-color flag.
// It returns a function that restores the previous setting.
func Force(on bool) (restore func()) {
	prev := enabled
	enabled = on

	return func() { enabled = prev }
}

// ControlString returns the raw escape sequence for the codes, or an empty
// string when color is disabled.
func ControlString(c ...Code) string {
	if !enabled {
		return ""
	}

	return sequence(c)
}

// Colorize wraps str in the given codes and appends a reset.
func Colorize(str string, c ...Code) string {
	if !enabled {
		return str
	}

	return paint(str, c, true)
}

// Paint is Colorize without the enabled check, for writers that make their
// own decision about color.
func Paint(str string, c ...Code) string {
	return paint(str, c, true)
}

// ColorizeNoReset is Colorize without the trailing reset.
func ColorizeNoReset(str string, c ...Code) string {
	if !enabled {
		return str
	}

	return paint(str, c, false)
}

func paint(str string, c []Code, withReset bool) string {
	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(sequence(c))
	sb.WriteString(str)

	if withReset {
		sb.WriteString(reset)
	}

	return sb.String()
}

func sequence(c []Code) string {
	sb := strings.Builder{}
	sb.Grow(len(prefix) + len(suffix) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range c {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)

	return sb.String()
}

func isColorCapable() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
