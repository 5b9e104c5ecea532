// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package persist

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cmdgroups/internal/store"
)

// Validate checks a state before it replaces the store and reports every problem found.
// Each group must be keyed by its own non-empty ID and have a name, and command IDs
// must be present and unique within their group.
func Validate(state store.State) error {
	var result *multierror.Error

	for _, key := range slices.Sorted(maps.Keys(state.Groups)) {
		g := state.Groups[key]

		switch {
		case g.ID == "":
			result = multierror.Append(result, fmt.Errorf("group %q: missing id", key))
		case g.ID != key:
			result = multierror.Append(result, fmt.Errorf("group %q: id %q does not match its key", key, g.ID))
		}

		if strings.TrimSpace(g.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("group %q: missing name", key))
		}

		seen := make(map[string]struct{}, len(g.Commands))

		for i, c := range g.Commands {
			if c.ID == "" {
				result = multierror.Append(result, fmt.Errorf("group %q: command %d: missing id", key, i))
			} else if _, dup := seen[c.ID]; dup {
				result = multierror.Append(result, fmt.Errorf("group %q: command %d: duplicate id %q", key, i, c.ID))
			}

			seen[c.ID] = struct{}{}

			if strings.TrimSpace(c.Name) == "" {
				result = multierror.Append(result, fmt.Errorf("group %q: command %d: missing name", key, i))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidState, err)
	}

	return nil
}
