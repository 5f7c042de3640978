package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
	"github.com/iudanet/mastopress/internal/state/statetest"
)

func TestStorage_Conformance(t *testing.T) {
	statetest.TestStore(t, func(t *testing.T, path string) state.Store {
		store, err := New(context.Background(), path+".db")
		require.NoError(t, err)
		return store
	})
}

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакет существует
	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketTracked) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// Директория вместо файла БД
	store, err := New(context.Background(), t.TempDir())
	assert.Error(t, err)
	assert.ErrorIs(t, err, state.ErrPersistence)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать
	assert.NoError(t, store.Close())
}

func TestClosedStorage(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrStorageClosed)
	assert.ErrorIs(t, err, state.ErrPersistence)

	err = store.Save(ctx, state.New())
	assert.ErrorIs(t, err, ErrStorageClosed)
}

func TestLoad_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Пишем некорректный JSON напрямую в bucket
	err = store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTracked).Put([]byte("A"), []byte("{broken"))
	})
	require.NoError(t, err)

	_, err = store.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, state.ErrCorrupt)
	assert.ErrorIs(t, err, state.ErrPersistence)
}

func TestLoad_EntryWithoutPageID(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	err = store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTracked).Put([]byte("A"), []byte(`{"replies":["r1"]}`))
	})
	require.NoError(t, err)

	_, err = store.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, state.ErrCorrupt)
	assert.ErrorIs(t, err, models.ErrMissingPageID)
}

func TestLoad_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	err = store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketTracked)
	})
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}
