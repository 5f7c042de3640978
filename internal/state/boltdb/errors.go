package boltdb

import "errors"

// ErrStorageClosed indicates that storage is closed
var ErrStorageClosed = errors.New("storage is closed")
