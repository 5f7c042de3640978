package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
	"github.com/iudanet/mastopress/internal/state/statetest"
)

// setupTestStorage создает in-memory хранилище с примененными миграциями
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		require.NoError(t, s.Close())
	}
	return s, cleanup
}

func TestStorage_Conformance(t *testing.T) {
	statetest.TestStore(t, func(t *testing.T, path string) state.Store {
		s, err := New(context.Background(), path+".sqlite")
		require.NoError(t, err)
		return s
	})
}

func TestNew_Migrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"tracked_posts", "merged_replies"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSave_ReplyOrderPreserved(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tracked := state.New()
	tracked.Put("A", models.TrackedEntry{PageID: "100"})
	tracked.AddMergedReplies("A", "z", "a", "m")
	require.NoError(t, s.Save(ctx, tracked))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)

	entry, ok := loaded.Get("A")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, entry.Replies)
}

func TestLoad_OrphanReply(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// Отключаем внешние ключи, чтобы записать ответ без поста
	_, err := s.DB().Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = s.DB().Exec(`INSERT INTO merged_replies (post_id, reply_id, position) VALUES ('ghost', 'r1', 0)`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, state.ErrCorrupt)
	assert.ErrorIs(t, err, state.ErrPersistence)
}

func TestLoad_EmptyPageID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.DB().Exec(`INSERT INTO tracked_posts (post_id, page_id) VALUES ('A', '')`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, state.ErrCorrupt)
	assert.ErrorIs(t, err, models.ErrMissingPageID)
}

func TestSave_CanceledContext(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Save(ctx, statetest.Sample())
	require.Error(t, err)
	assert.ErrorIs(t, err, state.ErrPersistence)
}
