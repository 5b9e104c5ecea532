// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == goosWindows {
		t.Skip("test relies on sh")
	}
}

func testContext() context.Context {
	return ctxlog.New(context.Background(), ctxlog.DefaultLogger)
}

func TestRunSync_Success(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	out, err := New().RunSync(testContext(), "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestRunSync_EmptyCommandLine(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	out, err := New().RunSync(testContext(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunSync_ShellFeatures(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	out, err := New().RunSync(testContext(), "printf 'a b\\n' | tr ' ' '-' && echo $((1+2))")
	require.NoError(t, err)
	assert.Equal(t, "a-b\n3\n", out)
}

func TestRunSync_NonZeroExit(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	tests := []struct {
		name        string
		commandLine string
		exitCode    int
		stderr      string
	}{
		{
			name:        "exit 1 without stderr",
			commandLine: "exit 1",
			exitCode:    1,
			stderr:      "",
		},
		{
			name:        "stderr is captured and stdout is dropped",
			commandLine: "echo visible; echo oops >&2; exit 3",
			exitCode:    3,
			stderr:      "oops\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New().RunSync(testContext(), tt.commandLine)
			require.Error(t, err)
			assert.Empty(t, out)
			require.ErrorIs(t, err, ErrExecution)

			var exitErr *ExitError

			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.exitCode, exitErr.ExitCode)
			assert.Equal(t, tt.stderr, exitErr.Stderr)
			assert.Equal(t, "Command failed: "+tt.stderr, err.Error())
		})
	}
}

func TestRunSync_LaunchError(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := New(WithShell("/not/a/real/shell")).RunSync(testContext(), "echo hi")
	require.ErrorIs(t, err, ErrLaunch)

	var pathErr *os.PathError

	require.ErrorAs(t, err, &pathErr)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to start command: "), err.Error())
	assert.False(t, errors.Is(err, ErrExecution))
}

func TestRunSync_Timeout(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	const timeout = 300 * time.Millisecond

	start := time.Now()
	out, err := New(WithTimeout(timeout)).RunSync(testContext(), "sleep 5")
	elapsed := time.Since(start)

	assert.Empty(t, out)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "Command timed out after 300ms", err.Error())
	assert.GreaterOrEqual(t, elapsed, timeout, "must not give up before the timeout")
	assert.Less(t, elapsed, 3*time.Second, "must not wait for the process")
}

func TestRunSync_TimeoutKillsBackgroundChildren(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	// The shell exits at once but leaves sleep holding stdout.
	start := time.Now()
	_, err := New(WithTimeout(500*time.Millisecond)).RunSync(testContext(), "sleep 5 & echo started")

	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunSync_IgnoresCallerCancellation(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	out, err := New().RunSync(ctx, "sleep 0.2; echo finished")
	require.NoError(t, err)
	assert.Equal(t, "finished\n", out)
}

func TestRunSync_LenientDecoding(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	out, err := New().RunSync(testContext(), `printf '\377abc'`)
	require.NoError(t, err)
	assert.Equal(t, "�abc", out)
}

func TestRunSync_LargeOutputDoesNotBlock(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	const size = 512 * 1024

	out, err := New(WithTimeout(10*time.Second)).RunSync(testContext(), "head -c 524288 /dev/zero | tr '\\000' a")
	require.NoError(t, err)
	assert.Len(t, out, size)
}

func TestRunDetached_ReturnsImmediately(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	start := time.Now()
	out, err := New().RunDetached(testContext(), "sleep 5")

	require.NoError(t, err)
	assert.Equal(t, DetachedAck, out)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunDetached_LaunchError(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := New(WithShell("/not/a/real/shell")).RunDetached(testContext(), "sleep 5")
	require.ErrorIs(t, err, ErrLaunch)
}

func TestNew_Options(t *testing.T) {
	r := New()
	assert.Equal(t, DefaultTimeout, r.Timeout())
	assert.Equal(t, 30*time.Second, DefaultTimeout)

	r = New(WithTimeout(-time.Second), WithShell(""))
	assert.Equal(t, DefaultTimeout, r.Timeout(), "non-positive timeouts are ignored")
	assert.NotEmpty(t, r.shell)

	r = New(WithTimeout(time.Second), WithShell("/bin/bash"))
	assert.Equal(t, time.Second, r.Timeout())
	assert.Equal(t, "/bin/bash", r.shell)
}

func TestTimeoutError_Message(t *testing.T) {
	tests := []struct {
		after time.Duration
		want  string
	}{
		{after: DefaultTimeout, want: "Command timed out after 30 seconds"},
		{after: time.Second, want: "Command timed out after 1 second"},
		{after: 1500 * time.Millisecond, want: "Command timed out after 1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := &TimeoutError{After: tt.after}
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, ErrTimeout)
		})
	}
}

func TestReadAllUpToMax(t *testing.T) {
	c := readAllUpToMax(strings.NewReader("0123456789"), 4)
	require.NoError(t, c.err)
	assert.Equal(t, "0123", string(c.data))
	assert.Equal(t, int64(6), c.discarded)

	c = readAllUpToMax(strings.NewReader("abc"), 4)
	require.NoError(t, c.err)
	assert.Equal(t, "abc", string(c.data))
	assert.Zero(t, c.discarded)
}

func TestShellArgs(t *testing.T) {
	skipOnWindows(t)

	assert.Equal(t, []string{"sh", "-c", "echo 'a b'"}, shellArgs("/bin/sh", "echo 'a b'"))
}
