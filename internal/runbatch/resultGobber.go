// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"encoding/gob"
	"errors"
	"io"
)

// WriteBinary saves results so they can be shown again later with ReadBinary.
func WriteBinary(w io.Writer, results Results) error {
	if err := gob.NewEncoder(w).Encode(results); err != nil {
		return errors.Join(ErrWriteBinary, err)
	}

	return nil
}

// ReadBinary loads results written by WriteBinary.
func ReadBinary(r io.Reader) (Results, error) {
	var results Results

	if err := gob.NewDecoder(r).Decode(&results); err != nil {
		return nil, errors.Join(ErrReadBinary, err)
	}

	return results, nil
}
