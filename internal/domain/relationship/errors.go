package relationship

import "errors"

var (
	// ErrNoParticipant indicates the tenant has no entry in the relationship.
	ErrNoParticipant = errors.New("tenant is not a participant of the relationship")
	// ErrAlreadyExists indicates a relationship for the pair already exists.
	ErrAlreadyExists = errors.New("relationship already exists for the pair")
)
