package tenancy

import (
	"context"

	"github.com/candourhq/candour/internal/domain/project"
)

// Repository provides persistence for tenants.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	Get(ctx context.Context, id string) (*Tenant, error)
	GetByDisplayName(ctx context.Context, name string) (*Tenant, error)
	Save(ctx context.Context, t *Tenant) error
}

// ProjectReader resolves per-tenant project copies; the registry uses it to
// detect residual sharing before a relationship is revoked.
type ProjectReader interface {
	GetCopy(ctx context.Context, publicID, holderTenantID string) (*project.Copy, error)
}
