// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decorates terminal output with ANSI escape codes.
// Colour is on when FORCE_COLOR is set or stdout is a terminal, and always off
// when NO_COLOR is set.
package color
