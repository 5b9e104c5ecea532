// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"io"
	"os"
	"slices"
	"time"
)

// ErrorPrefix starts the outcome text of every failed command.
const ErrorPrefix = "Error: "

// ResultStatus is what happened to a command.
type ResultStatus int

const (
	// ResultStatusUnknown is the zero value.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means a synchronous command exited with status 0.
	ResultStatusSuccess
	// ResultStatusError means the command failed to launch, failed or timed out.
	ResultStatusError
	// ResultStatusDetached means the command was started in the background.
	ResultStatusDetached
)

// String implements fmt.Stringer.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	case ResultStatusDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Result is the record of one command of a group run.
type Result struct {
	Label       string        // Command name
	CommandID   string        // Command ID
	CommandLine string        // The command line that was run
	Detached    bool          // Whether the command was launched detached
	Status      ResultStatus  // Success, error or detached
	Output      string        // Standard output, or the detached acknowledgement
	ErrorText   string        // Message of the error when Status is ResultStatusError
	ExitCode    int           // Exit status of a failed process, -1 when it has none
	Duration    time.Duration // Time spent launching or running the command
	err         error
}

// Err returns the error the command failed with, or nil. Results read back with
// ReadBinary only carry ErrorText, so the returned error has no chain.
func (r *Result) Err() error {
	if r.err != nil {
		return r.err
	}

	if r.Status == ResultStatusError {
		return errors.New(r.ErrorText)
	}

	return nil
}

func (r *Result) setError(err error) {
	r.err = err
	r.Status = ResultStatusError
	r.ErrorText = err.Error()
	r.ExitCode = exitCodeOf(err)
	r.Output = ""
}

// Outcome is the flat (name, text) form of a Result. Text is the output on success and
// ErrorPrefix followed by the error message on failure.
type Outcome struct {
	Name   string `json:"name"`
	Output string `json:"output"`
}

// Outcome flattens the result.
func (r *Result) Outcome() Outcome {
	if r.Status == ResultStatusError {
		return Outcome{Name: r.Label, Output: ErrorPrefix + r.ErrorText}
	}

	return Outcome{Name: r.Label, Output: r.Output}
}

// Results is the ordered list of results of a group run.
type Results []*Result

// Outcomes flattens every result, keeping the order.
func (r Results) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r))
	for v := range slices.Values(r) {
		out = append(out, v.Outcome())
	}

	return out
}

// HasError reports whether any command failed.
func (r Results) HasError() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of failed commands.
func (r Results) ErrorCount() int {
	n := 0

	for v := range slices.Values(r) {
		if v.Status == ResultStatusError {
			n++
		}
	}

	return n
}

// Print writes the results to stdout with default options.
func (r Results) Print() error {
	return WriteText(os.Stdout, r, nil)
}

// WriteText writes the results to w with default options.
func (r Results) WriteText(w io.Writer) error {
	return WriteText(w, r, nil)
}

// WriteTextWithOptions writes the results to w.
func (r Results) WriteTextWithOptions(w io.Writer, options *OutputOptions) error {
	return WriteText(w, r, options)
}
