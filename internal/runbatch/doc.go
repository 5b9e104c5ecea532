// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs the commands of a group one after the other and collects one
// Result per command. A failing command never stops the batch: its error becomes
// the text of its Result and the next command runs. Independent groups can be run
// from separate goroutines at the same time.
package runbatch
