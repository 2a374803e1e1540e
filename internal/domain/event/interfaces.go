package event

import (
	"context"

	"github.com/candourhq/candour/internal/domain/project"
)

// Repository provides persistence for events.
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	Get(ctx context.Context, id string) (*Event, error)
	GetMany(ctx context.Context, ids []string) ([]Event, error)
}

// ProjectStore is the slice of the project repository the attachment engine
// needs: resolving copies and rewriting their event reference lists.
type ProjectStore interface {
	GetCopy(ctx context.Context, publicID, holderTenantID string) (*project.Copy, error)
	Save(ctx context.Context, copy *project.Copy) error
}
