// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner starts a single command line under the platform shell
// ("cmd.exe /C" on Windows, "sh -c" elsewhere).
//
// RunSync waits for the process and returns its standard output. It is bounded by
// a fixed timeout (30 seconds by default) and by nothing else: cancelling the
// caller's context does not stop the command. When the timeout fires the whole
// process group is killed.
//
// RunDetached starts the process with its standard streams on the null device and
// returns as soon as the operating system has created it. Nothing about the process
// is kept afterwards.
package runner
