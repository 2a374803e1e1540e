package event

import "errors"

var (
	// ErrEventNotFound indicates the event doesn't exist or is not visible
	// through the caller's project copy.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidInput indicates invalid event input.
	ErrInvalidInput = errors.New("invalid event input")
)
