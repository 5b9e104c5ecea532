// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package runner

import (
	"os"
	"syscall"
)

// detachedProcess is DETACHED_PROCESS from the Win32 process creation flags.
const detachedProcess = 0x00000008

// cmd.exe does its own parsing of the command line, so it is handed over as typed
// instead of being re-quoted argument by argument.
func rawCmdLine(shell, commandLine string) string {
	return `"` + shell + `" ` + commandSwitchWindows + ` ` + commandLine
}

func syncSysProcAttr(shell, commandLine string) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CmdLine:       rawCmdLine(shell, commandLine),
		HideWindow:    true,
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

func detachedSysProcAttr(shell, commandLine string) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CmdLine:       rawCmdLine(shell, commandLine),
		HideWindow:    true,
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
}

// killProcessGroup kills the interpreter. Windows has no process group kill
// without job objects; grandchildren survive.
func killProcessGroup(ps *os.Process) error {
	return ps.Kill()
}
