// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"maps"
	"slices"
)

// Command is a single command line that belongs to a group.
type Command struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	CommandLine string `json:"command" yaml:"command"`
	Detached    bool   `json:"is_detached,omitempty" yaml:"is_detached,omitempty"`
}

// Group is a named, ordered list of commands. The order is the execution order.
type Group struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Commands []Command `json:"commands" yaml:"commands"`
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	g.Commands = slices.Clone(g.Commands)
	if g.Commands == nil {
		g.Commands = []Command{}
	}

	return g
}

// State is everything the store holds, keyed by group ID.
// It is the unit that gets persisted, exported and imported.
type State struct {
	Groups map[string]Group `json:"groups" yaml:"groups"`
}

// NewState returns an empty State.
func NewState() State {
	return State{Groups: make(map[string]Group)}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{Groups: make(map[string]Group, len(s.Groups))}
	for id, g := range maps.All(s.Groups) {
		out.Groups[id] = g.Clone()
	}

	return out
}
