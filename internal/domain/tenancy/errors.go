package tenancy

import "errors"

var (
	// ErrTenantNotFound indicates the tenant doesn't exist.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrReservedName indicates the display name is reserved for the public
	// tenant.
	ErrReservedName = errors.New("display name is reserved")
	// ErrUnknownCollaborator indicates the target tenant doesn't exist.
	ErrUnknownCollaborator = errors.New("collaborator tenant does not exist")
	// ErrRelationshipNotFound indicates no relationship exists with the
	// target tenant.
	ErrRelationshipNotFound = errors.New("no relationship with tenant")
	// ErrCollaboratorNotActive indicates a tenant lacks an active
	// relationship with the caller.
	ErrCollaboratorNotActive = errors.New("collaborator relationship is not active")
	// ErrProjectStillShared indicates a relationship cannot be revoked while
	// a project is still shared between the two tenants.
	ErrProjectStillShared = errors.New("remove the tenant from shared projects before removing the collaborator")
)
