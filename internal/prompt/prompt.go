// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt asks the user questions on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user presses Ctrl+C or closes the input.
var ErrAborted = errors.New("aborted")

// Confirm asks a yes/no question. Anything other than y or yes is a no.
var Confirm = func(question string) (bool, error) {
	line := liner.NewLiner()

	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	input, err := line.Prompt(question + " [y/N]: ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return false, ErrAborted
		}

		return false, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	return isYes(input), nil
}

func isYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
