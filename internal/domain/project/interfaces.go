package project

import "context"

// Repository provides persistence for project copies.
type Repository interface {
	// Put inserts the copy, replacing any previous copy held by the same
	// tenant for the same public project id.
	Put(ctx context.Context, copy *Copy) error
	// GetCopy returns the copy held by one tenant for one logical project.
	GetCopy(ctx context.Context, publicID, holderTenantID string) (*Copy, error)
	// Save rewrites an existing copy document.
	Save(ctx context.Context, copy *Copy) error
	// ListByHolder returns every copy held by a tenant.
	ListByHolder(ctx context.Context, holderTenantID string) ([]Copy, error)
}

// CollaboratorGate verifies requested collaborators have an active
// relationship with the acting tenant before sharing is granted.
type CollaboratorGate interface {
	CheckCollaboratorsActive(ctx context.Context, selfTenantID string, collaboratorIDs []string) error
}

// TenantRegistrar is the slice of the tenancy registry the replication engine
// needs: attaching project refs, resolving display names, and identifying the
// reserved public tenant.
type TenantRegistrar interface {
	AttachProjectRef(ctx context.Context, tenantID, publicProjectID string) error
	DisplayName(ctx context.Context, tenantID string) (string, error)
	PublicTenantID(ctx context.Context) (string, error)
}
