package project

import "time"

// Status of a project. INACTIVE projects reject writes but remain readable.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Copy is one tenant's materialized view of a logical project. Every tenant
// that can see the project holds exactly one copy per public project id; all
// copies of the same logical project share PublicID. The collaborator list is
// canonical only on the owner's copy and mirrored to the others for display.
type Copy struct {
	InternalID     string            `json:"internal_id"`
	PublicID       string            `json:"public_id"`
	OwnerTenantID  string            `json:"owner_tenant_id"`
	HolderTenantID string            `json:"holder_tenant_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Status         Status            `json:"status"`
	StartedDate    time.Time         `json:"started_date"`
	CustomMetaData map[string]string `json:"custom_meta_data"`
	Events         []string          `json:"events"`
	Collaborators  []string          `json:"collaborators"`
	Diffs          []DiffRecord      `json:"diffs"`
	Public         bool              `json:"public"`
}

// IsOwner reports whether the tenant owns the logical project.
func (c *Copy) IsOwner(tenantID string) bool {
	return c.OwnerTenantID == tenantID
}

// HasCollaborator reports whether the tenant appears in the collaborator list
// of this copy.
func (c *Copy) HasCollaborator(tenantID string) bool {
	for _, id := range c.Collaborators {
		if id == tenantID {
			return true
		}
	}
	return false
}

// IsActiveFor gates write operations: the project must be ACTIVE and the
// tenant must still be listed as a collaborator. Reads deliberately skip this
// check so a removed collaborator keeps its last-known view.
func (c *Copy) IsActiveFor(tenantID string) bool {
	return c.Status == StatusActive && c.HasCollaborator(tenantID)
}

// HasEvent reports whether the event was fanned out to this copy.
func (c *Copy) HasEvent(eventID string) bool {
	for _, id := range c.Events {
		if id == eventID {
			return true
		}
	}
	return false
}

// CollaboratorInfo pairs a collaborator tenant id with its display name.
type CollaboratorInfo struct {
	TenantID    string `json:"tenantID"`
	DisplayName string `json:"displayName"`
}
