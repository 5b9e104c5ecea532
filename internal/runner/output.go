// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

// maxBufferSize is the most output kept per stream. Anything beyond it is read and discarded
// so the child never blocks on a full pipe.
const maxBufferSize = 8 * 1024 * 1024

type captured struct {
	data      []byte
	discarded int64
	err       error
}

func readAllUpToMax(r io.Reader, limit int64) captured {
	var buf bytes.Buffer

	_, err := io.CopyN(&buf, r, limit)
	if err != nil {
		return captured{data: buf.Bytes(), err: ignoreClosed(err)}
	}

	n, err := io.Copy(io.Discard, r)

	return captured{data: buf.Bytes(), discarded: n, err: ignoreClosed(err)}
}

// ignoreClosed drops the errors a reader sees at end of stream or when the
// read end was closed to abandon a timed out process.
func ignoreClosed(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return nil
	}

	return err
}

// decode converts process output to a string, replacing invalid UTF-8 with U+FFFD.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
