// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
)

// Persister makes a State durable.
type Persister interface {
	// Load returns the saved state, or an empty state if nothing was saved yet.
	Load(ctx context.Context) (State, error)
	// Save replaces the saved state. It must not return before the data is durable.
	Save(ctx context.Context, state State) error
}

// Store is the in-memory group mapping. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	groups    map[string]Group
	persister Persister
	newID     func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUIDv4 generator used for new groups and commands.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open loads the state from p and returns a store backed by it.
// A load failure is logged and the store starts empty. A nil p keeps everything in memory.
func Open(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		groups:    make(map[string]Group),
		persister: p,
		newID:     uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	if p == nil {
		return s
	}

	state, err := p.Load(ctx)
	if err != nil {
		ctxlog.Error(ctx, "failed to load data, starting with an empty store", "error", err)
		return s
	}

	if state.Groups != nil {
		s.groups = state.Clone().Groups
	}

	ctxlog.Debug(ctx, "store loaded", "groups", len(s.groups))

	return s
}

// Get returns a copy of the group with the given ID.
func (s *Store) Get(groupID string) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	return g.Clone(), nil
}

// Find returns a copy of the group whose ID is ref or, failing that, the only group named ref.
func (s *Store) Find(ref string) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.groups[ref]; ok {
		return g.Clone(), nil
	}

	var found []Group

	for g := range maps.Values(s.groups) {
		if g.Name == ref {
			found = append(found, g)
		}
	}

	switch len(found) {
	case 0:
		return Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, ref)
	case 1:
		return found[0].Clone(), nil
	default:
		return Group{}, fmt.Errorf("%w: %s", ErrAmbiguousGroup, ref)
	}
}

// List returns copies of all groups ordered by name, then ID.
func (s *Store) List() []Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Group, 0, len(s.groups))
	for g := range maps.Values(s.groups) {
		out = append(out, g.Clone())
	}

	slices.SortFunc(out, func(a, b Group) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return out
}

// Snapshot returns a deep copy of everything in the store.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{Groups: s.groups}.Clone()
}

// CreateGroup adds an empty group and returns its ID.
func (s *Store) CreateGroup(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidName
	}

	var id string

	err := s.mutate(ctx, func(st State) error {
		id = s.newID()
		st.Groups[id] = Group{ID: id, Name: name, Commands: []Command{}}

		return nil
	})
	if err != nil {
		return "", err
	}

	ctxlog.Info(ctx, "group created", "groupID", id, "name", name)

	return id, nil
}

// DeleteGroup removes a group and its commands.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	err := s.mutate(ctx, func(st State) error {
		if _, ok := st.Groups[groupID]; !ok {
			return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
		}

		delete(st.Groups, groupID)

		return nil
	})
	if err != nil {
		return err
	}

	ctxlog.Info(ctx, "group deleted", "groupID", groupID)

	return nil
}

// AddCommand appends a command to a group and returns the command ID.
func (s *Store) AddCommand(ctx context.Context, groupID, name, commandLine string, detached bool) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidName
	}

	var id string

	err := s.mutate(ctx, func(st State) error {
		g, ok := st.Groups[groupID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
		}

		id = s.newID()
		g.Commands = append(g.Commands, Command{
			ID:          id,
			Name:        name,
			CommandLine: commandLine,
			Detached:    detached,
		})
		st.Groups[groupID] = g

		return nil
	})
	if err != nil {
		return "", err
	}

	ctxlog.Info(ctx, "command added", "groupID", groupID, "commandID", id, "detached", detached)

	return id, nil
}

// RemoveCommand deletes a command from a group.
func (s *Store) RemoveCommand(ctx context.Context, groupID, commandID string) error {
	err := s.mutate(ctx, func(st State) error {
		g, ok := st.Groups[groupID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
		}

		idx := slices.IndexFunc(g.Commands, func(c Command) bool { return c.ID == commandID })
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrCommandNotFound, commandID)
		}

		g.Commands = slices.Delete(g.Commands, idx, idx+1)
		st.Groups[groupID] = g

		return nil
	})
	if err != nil {
		return err
	}

	ctxlog.Info(ctx, "command removed", "groupID", groupID, "commandID", commandID)

	return nil
}

// Replace swaps the whole content of the store for state.
func (s *Store) Replace(ctx context.Context, state State) error {
	err := s.mutate(ctx, func(st State) error {
		clear(st.Groups)

		for id, g := range maps.All(state.Groups) {
			st.Groups[id] = g.Clone()
		}

		return nil
	})
	if err != nil {
		return err
	}

	ctxlog.Info(ctx, "store replaced", "groups", len(state.Groups))

	return nil
}

// mutate applies fn to a copy of the state, saves the copy and only then makes it current.
// The lock is held throughout so saves are never reordered.
func (s *Store) mutate(ctx context.Context, fn func(State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := State{Groups: s.groups}.Clone()

	if err := fn(next); err != nil {
		return err
	}

	if s.persister != nil {
		if err := s.persister.Save(ctx, next); err != nil {
			ctxlog.Error(ctx, "failed to save data", "error", err)
			return errors.Join(ErrPersist, err)
		}
	}

	s.groups = next.Groups

	return nil
}
