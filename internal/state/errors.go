package state

import "errors"

var (
	// ErrPersistence wraps every fault of loading or saving tracked state
	ErrPersistence = errors.New("tracked state persistence failed")

	// ErrCorrupt indicates that stored state exists but cannot be decoded
	ErrCorrupt = errors.New("tracked state is corrupt")
)
