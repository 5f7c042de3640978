// Package statetest provides a conformance suite for state.Store backends.
package statetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
)

// Opener opens (or creates) a backend at path
type Opener func(t *testing.T, path string) state.Store

// TestStore runs the backend-independent persistence checks.
func TestStore(t *testing.T, open Opener) {
	t.Run("LoadMissing", func(t *testing.T) {
		testLoadMissing(t, open)
	})
	t.Run("RoundTrip", func(t *testing.T) {
		testRoundTrip(t, open)
	})
	t.Run("SaveOverwrites", func(t *testing.T) {
		testSaveOverwrites(t, open)
	})
	t.Run("SaveLoadNoop", func(t *testing.T) {
		testSaveLoadNoop(t, open)
	})
	t.Run("SurvivesReopen", func(t *testing.T) {
		testSurvivesReopen(t, open)
	})
}

func newPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "tracked")
}

func closeStore(t *testing.T, store state.Store) {
	require.NoError(t, store.Close())
}

// Sample returns a mapping exercising empty and non-empty reply sets
func Sample() *state.TrackedState {
	return state.FromEntries(map[string]models.TrackedEntry{
		"109876543210":  {PageID: "100", Replies: []string{}},
		"109876543211":  {PageID: "101", Replies: []string{"r3", "r1", "r2"}},
		"post/with:sep": {PageID: "102", Replies: []string{"only"}},
	})
}

func testLoadMissing(t *testing.T, open Opener) {
	store := open(t, newPath(t))
	defer closeStore(t, store)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 0, loaded.Len())
}

func testRoundTrip(t *testing.T, open Opener) {
	ctx := context.Background()
	cases := map[string]*state.TrackedState{
		"empty":  state.New(),
		"sample": Sample(),
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			store := open(t, newPath(t))
			defer closeStore(t, store)

			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(want.Entries(), got.Entries()); diff != "" {
				t.Errorf("load(save(x)) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func testSaveOverwrites(t *testing.T, open Opener) {
	ctx := context.Background()
	store := open(t, newPath(t))
	defer closeStore(t, store)

	require.NoError(t, store.Save(ctx, Sample()))

	next := state.New()
	next.Put("other", models.TrackedEntry{PageID: "9", Replies: []string{"x"}})
	require.NoError(t, store.Save(ctx, next))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(next.Entries(), got.Entries()); diff != "" {
		t.Errorf("previous durable form leaked (-want +got):\n%s", diff)
	}
}

func testSaveLoadNoop(t *testing.T, open Opener) {
	ctx := context.Background()
	store := open(t, newPath(t))
	defer closeStore(t, store)

	require.NoError(t, store.Save(ctx, Sample()))

	first, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, first))

	second, err := store.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(first.Entries(), second.Entries()); diff != "" {
		t.Errorf("save(load()) changed state (-first +second):\n%s", diff)
	}
}

func testSurvivesReopen(t *testing.T, open Opener) {
	ctx := context.Background()
	path := newPath(t)

	store := open(t, path)
	want := Sample()
	want.AddMergedReplies("109876543210", "late")
	require.NoError(t, store.Save(ctx, want))
	closeStore(t, store)

	reopened := open(t, path)
	defer closeStore(t, reopened)

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Entries(), got.Entries()); diff != "" {
		t.Errorf("state lost across reopen (-want +got):\n%s", diff)
	}
}
