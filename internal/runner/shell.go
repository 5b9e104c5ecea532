// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	winSystem32          = "System32"
	cmdExe               = "cmd.exe"
	binSh                = "/bin/sh"
	winSystemRootEnv     = "SystemRoot"
)

// defaultShell returns the interpreter used for command lines on this platform.
func defaultShell() string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return filepath.Join(systemRoot, winSystem32, cmdExe)
	}

	if p, err := exec.LookPath("sh"); err == nil {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	}

	return binSh
}

// shellArgs returns the argv for running commandLine under shell.
// The command line is passed as a single argument and never parsed here.
func shellArgs(shell, commandLine string) []string {
	if runtime.GOOS == goosWindows {
		return []string{filepath.Base(shell), commandSwitchWindows, commandLine}
	}

	return []string{filepath.Base(shell), commandSwitchUnix, commandLine}
}
