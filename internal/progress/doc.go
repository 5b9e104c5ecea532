// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries live events about commands of a running group to
// whoever wants to display them. The orchestrator reports, a listener such as
// WriterListener renders.
package progress
