// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, isColorCapable(), "NO_COLOR should disable color")

	t.Setenv(ForceColor, "1")
	assert.False(t, isColorCapable(), "NO_COLOR should win over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, isColorCapable(), "FORCE_COLOR should enable color")
}

func TestColorize(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		stubs := gostub.Stub(&enabled, true)
		defer stubs.Reset()

		assert.Equal(t, "\033[1;31mboom\033[0m", Colorize("boom", Bold, FgRed))
		assert.Equal(t, "\033[32mok", ColorizeNoReset("ok", FgGreen))
		assert.Equal(t, "\033[0m", ControlString(Reset))
	})

	t.Run("disabled", func(t *testing.T) {
		stubs := gostub.Stub(&enabled, false)
		defer stubs.Reset()

		assert.Equal(t, "boom", Colorize("boom", Bold, FgRed))
		assert.Equal(t, "ok", ColorizeNoReset("ok", FgGreen))
		assert.Empty(t, ControlString(Reset))
	})
}

func TestPaintIgnoresDetection(t *testing.T) {
	stubs := gostub.Stub(&enabled, false)
	defer stubs.Reset()

	assert.Equal(t, "\033[33mwarn\033[0m", Paint("warn", FgYellow))
}

func TestForce(t *testing.T) {
	stubs := gostub.Stub(&enabled, false)
	defer stubs.Reset()

	restore := Force(true)
	assert.True(t, Enabled())

	restore()
	assert.False(t, Enabled())
}
