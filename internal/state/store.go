package state

import "context"

//go:generate moq -out saver_mock.go . Saver

// Saver persists the full mapping, replacing any previous durable form
type Saver interface {
	Save(ctx context.Context, s *TrackedState) error
}

// Store is a durable backend for TrackedState.
// Load returns an empty mapping when nothing was stored yet; it fails with an
// error wrapping ErrPersistence (and ErrCorrupt for undecodable data) otherwise.
type Store interface {
	Saver

	Load(ctx context.Context) (*TrackedState, error)

	Close() error
}
