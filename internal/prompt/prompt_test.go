// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsYes(t *testing.T) {
	for _, in := range []string{"y", "Y", "yes", " YES "} {
		assert.True(t, isYes(in), in)
	}

	for _, in := range []string{"", "n", "no", "yep", "ye"} {
		assert.False(t, isYes(in), in)
	}
}
