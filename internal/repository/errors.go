package repository

import "errors"

var (
	// ErrNotFound is returned when a requested document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique key constraint fails
	ErrDuplicate = errors.New("duplicate key")

	// ErrConflict is returned when a concurrent write invalidated the update
	ErrConflict = errors.New("conflict: document was modified concurrently")
)
