// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersister struct {
	mu      sync.Mutex
	loaded  State
	loadErr error
	saveErr error
	saves   []State
}

func (f *fakePersister) Load(_ context.Context) (State, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) Save(_ context.Context, s State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}

	f.saves = append(f.saves, s.Clone())

	return nil
}

func (f *fakePersister) last() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.saves[len(f.saves)-1]
}

func sequentialIDs() Option {
	n := 0

	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func TestOpen_LoadsState(t *testing.T) {
	p := &fakePersister{loaded: State{Groups: map[string]Group{
		"g1": {ID: "g1", Name: "maintenance", Commands: []Command{{ID: "c1", Name: "cmd1", CommandLine: "echo hi"}}},
	}}}

	s := Open(context.Background(), p)

	g, err := s.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, "maintenance", g.Name)
	assert.Len(t, g.Commands, 1)
}

func TestOpen_LoadFailureStartsEmpty(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("corrupt file")}

	s := Open(context.Background(), p)
	assert.Empty(t, s.List())

	_, err := s.CreateGroup(context.Background(), "still works")
	require.NoError(t, err)
}

func TestOpen_NilPersisterIsMemoryOnly(t *testing.T) {
	s := Open(context.Background(), nil, sequentialIDs())

	id, err := s.CreateGroup(context.Background(), "g")
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
}

func TestCreateGroup(t *testing.T) {
	p := &fakePersister{}
	s := Open(context.Background(), p, sequentialIDs())

	id, err := s.CreateGroup(context.Background(), "builds")
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	require.Len(t, p.saves, 1, "every mutation is saved")
	assert.Equal(t, Group{ID: "id-1", Name: "builds", Commands: []Command{}}, p.last().Groups["id-1"])

	_, err = s.CreateGroup(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Len(t, p.saves, 1, "rejected mutations are not saved")
}

func TestAddAndRemoveCommand(t *testing.T) {
	p := &fakePersister{}
	s := Open(context.Background(), p, sequentialIDs())
	ctx := context.Background()

	gid, err := s.CreateGroup(ctx, "g1")
	require.NoError(t, err)

	c1, err := s.AddCommand(ctx, gid, "cmd1", "echo hi", false)
	require.NoError(t, err)
	c2, err := s.AddCommand(ctx, gid, "cmd2", "exit 1", false)
	require.NoError(t, err)
	c3, err := s.AddCommand(ctx, gid, "server", "sleep 100", true)
	require.NoError(t, err)

	g, err := s.Get(gid)
	require.NoError(t, err)
	assert.Equal(t, []Command{
		{ID: c1, Name: "cmd1", CommandLine: "echo hi"},
		{ID: c2, Name: "cmd2", CommandLine: "exit 1"},
		{ID: c3, Name: "server", CommandLine: "sleep 100", Detached: true},
	}, g.Commands, "commands keep insertion order")

	require.NoError(t, s.RemoveCommand(ctx, gid, c2))

	g, err = s.Get(gid)
	require.NoError(t, err)
	assert.Equal(t, []string{c1, c3}, []string{g.Commands[0].ID, g.Commands[1].ID})
	assert.Len(t, p.last().Groups[gid].Commands, 2)

	require.ErrorIs(t, s.RemoveCommand(ctx, gid, "missing"), ErrCommandNotFound)
	require.ErrorIs(t, s.RemoveCommand(ctx, "missing", c1), ErrGroupNotFound)

	_, err = s.AddCommand(ctx, "missing", "x", "true", false)
	require.ErrorIs(t, err, ErrGroupNotFound)

	_, err = s.AddCommand(ctx, gid, "", "true", false)
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestDeleteGroup(t *testing.T) {
	p := &fakePersister{}
	s := Open(context.Background(), p, sequentialIDs())
	ctx := context.Background()

	gid, err := s.CreateGroup(ctx, "g1")
	require.NoError(t, err)

	require.NoError(t, s.DeleteGroup(ctx, gid))
	assert.Empty(t, p.last().Groups)

	_, err = s.Get(gid)
	require.ErrorIs(t, err, ErrGroupNotFound)
	require.ErrorIs(t, s.DeleteGroup(ctx, gid), ErrGroupNotFound)
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	p := &fakePersister{}
	s := Open(context.Background(), p, sequentialIDs())
	ctx := context.Background()

	gid, err := s.CreateGroup(ctx, "g1")
	require.NoError(t, err)

	p.saveErr = errors.New("disk full")

	_, err = s.AddCommand(ctx, gid, "cmd1", "echo hi", false)
	require.ErrorIs(t, err, ErrPersist)

	_, err = s.CreateGroup(ctx, "g2")
	require.ErrorIs(t, err, ErrPersist)

	require.ErrorIs(t, s.DeleteGroup(ctx, gid), ErrPersist)

	g, err := s.Get(gid)
	require.NoError(t, err)
	assert.Empty(t, g.Commands)
	assert.Len(t, s.List(), 1)
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	s := Open(context.Background(), nil, sequentialIDs())
	ctx := context.Background()

	gid, err := s.CreateGroup(ctx, "g1")
	require.NoError(t, err)
	_, err = s.AddCommand(ctx, gid, "cmd1", "echo hi", false)
	require.NoError(t, err)

	g, err := s.Get(gid)
	require.NoError(t, err)

	g.Commands[0].CommandLine = "rm -rf /"
	g.Commands = append(g.Commands, Command{ID: "x"})

	again, err := s.Get(gid)
	require.NoError(t, err)
	assert.Equal(t, "echo hi", again.Commands[0].CommandLine)
	assert.Len(t, again.Commands, 1)
}

func TestListSortedByName(t *testing.T) {
	s := Open(context.Background(), nil, sequentialIDs())
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.CreateGroup(ctx, name)
		require.NoError(t, err)
	}

	var names []string
	for _, g := range s.List() {
		names = append(names, g.Name)
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestReplaceAndSnapshot(t *testing.T) {
	p := &fakePersister{}
	s := Open(context.Background(), p, sequentialIDs())
	ctx := context.Background()

	_, err := s.CreateGroup(ctx, "old")
	require.NoError(t, err)

	imported := State{Groups: map[string]Group{
		"a": {ID: "a", Name: "imported", Commands: []Command{{ID: "c", Name: "n", CommandLine: "true"}}},
	}}
	require.NoError(t, s.Replace(ctx, imported))

	snap := s.Snapshot()
	assert.Equal(t, imported, snap)
	assert.Equal(t, imported, p.last())

	imported.Groups["a"].Commands[0].CommandLine = "changed"
	assert.Equal(t, "true", s.Snapshot().Groups["a"].Commands[0].CommandLine, "store keeps its own copy")
}

func TestConcurrentMutationsAreAllSaved(t *testing.T) {
	p := &fakePersister{}
	s := Open(context.Background(), p)
	ctx := context.Background()

	gid, err := s.CreateGroup(ctx, "g")
	require.NoError(t, err)

	const n = 50

	var wg sync.WaitGroup

	for i := range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.AddCommand(ctx, gid, fmt.Sprintf("cmd%d", i), "true", false)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Len(t, p.last().Groups[gid].Commands, n, "the last save reflects every mutation")
}

func TestFind(t *testing.T) {
	s := Open(context.Background(), nil, sequentialIDs())
	ctx := context.Background()

	a, err := s.CreateGroup(ctx, "builds")
	require.NoError(t, err)
	_, err = s.CreateGroup(ctx, "twin")
	require.NoError(t, err)
	_, err = s.CreateGroup(ctx, "twin")
	require.NoError(t, err)

	g, err := s.Find(a)
	require.NoError(t, err)
	assert.Equal(t, "builds", g.Name)

	g, err = s.Find("builds")
	require.NoError(t, err)
	assert.Equal(t, a, g.ID)

	_, err = s.Find("twin")
	require.ErrorIs(t, err, ErrAmbiguousGroup)

	_, err = s.Find("nothing")
	require.ErrorIs(t, err, ErrGroupNotFound)
}
