// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package runner

import (
	"errors"
	"os"
	"syscall"
)

// syncSysProcAttr puts the child in a new process group so a timeout can kill
// everything the shell started.
func syncSysProcAttr(_, _ string) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// detachedSysProcAttr starts the child in its own session, away from our
// terminal and our signals.
func detachedSysProcAttr(_, _ string) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// killProcessGroup sends SIGKILL to the process group led by ps.
func killProcessGroup(ps *os.Process) error {
	err := syscall.Kill(-ps.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}

	return err
}
