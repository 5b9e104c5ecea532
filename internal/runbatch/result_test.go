// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/matt-FFFFFF/cmdgroups/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() Results {
	failed := &Result{Label: "cmd2", CommandLine: "exit 3", Duration: 5 * time.Millisecond}
	failed.setError(errors.New("Command failed: line one\nline two\n"))

	return Results{
		{Label: "cmd1", CommandLine: "echo hi", Status: ResultStatusSuccess, Output: "hi\nthere\n"},
		failed,
		{Label: "server", CommandLine: "serve", Detached: true, Status: ResultStatusDetached, Output: "Process started successfully in background"},
	}
}

func TestResultStatus_String(t *testing.T) {
	assert.Equal(t, "success", ResultStatusSuccess.String())
	assert.Equal(t, "error", ResultStatusError.String())
	assert.Equal(t, "detached", ResultStatusDetached.String())
	assert.Equal(t, "unknown", ResultStatusUnknown.String())
}

func TestWriteText(t *testing.T) {
	defer color.Force(false)()

	var buf bytes.Buffer
	require.NoError(t, sampleResults().WriteText(&buf))

	assert.Equal(t, "✓ cmd1\n"+
		"  ➜ Output:\n"+
		"     hi\n"+
		"     there\n"+
		"✗ cmd2\n"+
		"  ➜ Error: Command failed: line one\n"+
		"     line two\n"+
		"» server (detached)\n", buf.String())
}

func TestWriteText_Options(t *testing.T) {
	defer color.Force(false)()

	results := sampleResults()
	results[1].ExitCode = 3

	var buf bytes.Buffer
	require.NoError(t, results.WriteTextWithOptions(&buf, &OutputOptions{ShowCommandLine: true, ShowDuration: true}))

	out := buf.String()
	assert.Contains(t, out, "✗ cmd2 (exit code: 3) [5ms]\n  $ exit 3\n")
	assert.NotContains(t, out, "➜ Output:")
}

func TestWriteText_Colour(t *testing.T) {
	defer color.Force(true)()

	var buf bytes.Buffer
	require.NoError(t, sampleResults().WriteText(&buf))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, sampleResults()))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleResults().Outcomes(), got.Outcomes())
	assert.Equal(t, "Command failed: line one\nline two\n", got[1].Err().Error())
	assert.True(t, got.HasError())

	_, err = ReadBinary(bytes.NewBufferString("not gob"))
	require.ErrorIs(t, err, ErrReadBinary)
}
