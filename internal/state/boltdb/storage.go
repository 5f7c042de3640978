package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
)

var (
	// bucketTracked хранит записи: ключ - id поста, значение - JSON TrackedEntry
	bucketTracked = []byte("tracked")
)

var _ state.Store = (*Storage)(nil)

// Storage represents BoltDB implementation of state.Store
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB; timeout защищает от зависания, если файл занят другим процессом
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open boltdb: %w", state.ErrPersistence, err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to initialize buckets: %w", state.ErrPersistence, err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTracked); err != nil {
			return fmt.Errorf("failed to create tracked bucket: %w", err)
		}
		return nil
	})
}

// Load reads every entry of the tracked bucket
func (s *Storage) Load(ctx context.Context) (*state.TrackedState, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: %w", state.ErrPersistence, ErrStorageClosed)
	}

	entries := make(map[string]models.TrackedEntry)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTracked)
		if bucket == nil {
			// Нет bucket - возвращаем пустое состояние
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var entry models.TrackedEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("%w: failed to unmarshal entry %q: %w", state.ErrCorrupt, k, err)
			}
			entries[string(k)] = entry
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrPersistence, err)
	}

	return state.FromEntries(entries), nil
}

// Save replaces the whole bucket content in a single transaction
func (s *Storage) Save(ctx context.Context, tracked *state.TrackedState) error {
	if s.db == nil {
		return fmt.Errorf("%w: %w", state.ErrPersistence, ErrStorageClosed)
	}

	entries := tracked.Entries()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		// Удаляем bucket полностью
		if err := tx.DeleteBucket(bucketTracked); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to delete bucket: %w", err)
		}

		bucket, err := tx.CreateBucket(bucketTracked)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		for postID, entry := range entries {
			data, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("failed to marshal entry %s: %w", postID, err)
			}
			if err := bucket.Put([]byte(postID), data); err != nil {
				return fmt.Errorf("failed to save entry %s: %w", postID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: transaction failed: %w", state.ErrPersistence, err)
	}

	return nil
}
