// Package jsonfile stores tracked state in a JSON file compatible with
// the tracked_posts.json format: {"<postId>": {"pageId": ..., "replies": [...]}}.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
)

var _ state.Store = (*Store)(nil)

// Store is a file backed state.Store
type Store struct {
	path string
}

// New creates a store for the file at path. The file is created on the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the file. A missing or empty file yields an empty mapping.
func (s *Store) Load(ctx context.Context) (*state.TrackedState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state.New(), nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", state.ErrPersistence, s.path, err)
	}

	if len(data) == 0 {
		return state.New(), nil
	}

	var entries map[string]models.TrackedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w: failed to decode %s: %w", state.ErrPersistence, state.ErrCorrupt, s.path, err)
	}

	return state.FromEntries(entries), nil
}

// Save writes the whole mapping to a temp file next to the target and renames it
// over the target, so readers never observe a partially written file.
func (s *Store) Save(ctx context.Context, tracked *state.TrackedState) error {
	data, err := json.MarshalIndent(tracked.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode state: %w", state.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", state.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	// после успешного rename файла уже нет и Remove вернет ошибку, которую игнорируем
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: failed to write temp file: %w", state.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: failed to sync temp file: %w", state.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %w", state.ErrPersistence, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", state.ErrPersistence, s.path, err)
	}

	return nil
}

// Close is a no-op, the file is not held open between calls
func (s *Store) Close() error {
	return nil
}
