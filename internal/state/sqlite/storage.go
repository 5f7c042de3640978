package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ state.Store = (*Storage)(nil)

// Storage represents SQLite implementation of state.Store
type Storage struct {
	db *sql.DB
}

// New creates a new SQLite storage instance
// dbPath is the path to the SQLite database file
// Use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", state.ErrPersistence, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", state.ErrPersistence, err)
	}

	// Одно соединение: для ":memory:" каждое новое соединение получило бы свою пустую БД
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: failed to set pragma: %w", state.ErrPersistence, err)
		}
	}

	storage := &Storage{db: db}

	if err := storage.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to run migrations: %w", state.ErrPersistence, err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// Load reads all tracked posts with their merged replies in merge order
func (s *Storage) Load(ctx context.Context) (*state.TrackedState, error) {
	entries, err := s.loadPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrPersistence, err)
	}

	if err := s.loadReplies(ctx, entries); err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrPersistence, err)
	}

	return state.FromEntries(entries), nil
}

func (s *Storage) loadPosts(ctx context.Context) (map[string]models.TrackedEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT post_id, page_id FROM tracked_posts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make(map[string]models.TrackedEntry)
	for rows.Next() {
		var postID, pageID string
		if err := rows.Scan(&postID, &pageID); err != nil {
			return nil, fmt.Errorf("%w: failed to scan tracked post: %w", state.ErrCorrupt, err)
		}
		if pageID == "" {
			return nil, fmt.Errorf("%w: post %s: %w", state.ErrCorrupt, postID, models.ErrMissingPageID)
		}
		entries[postID] = models.TrackedEntry{PageID: pageID, Replies: []string{}}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracked posts: %w", err)
	}

	return entries, nil
}

func (s *Storage) loadReplies(ctx context.Context, entries map[string]models.TrackedEntry) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, reply_id FROM merged_replies
		ORDER BY post_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query merged replies: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var postID, replyID string
		if err := rows.Scan(&postID, &replyID); err != nil {
			return fmt.Errorf("%w: failed to scan merged reply: %w", state.ErrCorrupt, err)
		}
		entry, ok := entries[postID]
		if !ok {
			return fmt.Errorf("%w: reply %s references unknown post %s", state.ErrCorrupt, replyID, postID)
		}
		entry.Replies = append(entry.Replies, replyID)
		entries[postID] = entry
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate merged replies: %w", err)
	}

	return nil
}

// Save replaces all rows in one transaction
func (s *Storage) Save(ctx context.Context, tracked *state.TrackedState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", state.ErrPersistence, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := replaceAll(ctx, tx, tracked.Entries()); err != nil {
		return fmt.Errorf("%w: %w", state.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", state.ErrPersistence, err)
	}

	return nil
}

func replaceAll(ctx context.Context, tx *sql.Tx, entries map[string]models.TrackedEntry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM merged_replies`); err != nil {
		return fmt.Errorf("failed to clear merged replies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tracked_posts`); err != nil {
		return fmt.Errorf("failed to clear tracked posts: %w", err)
	}

	postStmt, err := tx.PrepareContext(ctx, `INSERT INTO tracked_posts (post_id, page_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare post insert: %w", err)
	}
	defer func() {
		_ = postStmt.Close()
	}()

	replyStmt, err := tx.PrepareContext(ctx, `INSERT INTO merged_replies (post_id, reply_id, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare reply insert: %w", err)
	}
	defer func() {
		_ = replyStmt.Close()
	}()

	for postID, entry := range entries {
		if _, err := postStmt.ExecContext(ctx, postID, entry.PageID); err != nil {
			return fmt.Errorf("failed to insert post %s: %w", postID, err)
		}
		for i, replyID := range entry.Replies {
			if _, err := replyStmt.ExecContext(ctx, postID, replyID, i); err != nil {
				return fmt.Errorf("failed to insert reply %s of post %s: %w", replyID, postID, err)
			}
		}
	}

	return nil
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}
