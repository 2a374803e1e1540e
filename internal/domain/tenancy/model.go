package tenancy

import "time"

// PublicTenantName is the reserved display name of the process-wide public
// tenant. Signing up with it is rejected.
const PublicTenantName = "public-transparency-service"

// Tenant is an organizational account, the unit of ownership and access
// control. ProjectRefs holds public project ids the tenant can see (owned or
// shared-in); RelationshipRefs holds relationship ids the tenant is a
// participant of.
type Tenant struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"display_name"`
	ProjectRefs      []string  `json:"project_refs"`
	RelationshipRefs []string  `json:"relationship_refs"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasProjectRef reports whether the tenant already references the project.
func (t *Tenant) HasProjectRef(publicProjectID string) bool {
	for _, ref := range t.ProjectRefs {
		if ref == publicProjectID {
			return true
		}
	}
	return false
}

// HasRelationshipRef reports whether the tenant already references the
// relationship.
func (t *Tenant) HasRelationshipRef(relationshipID string) bool {
	for _, ref := range t.RelationshipRefs {
		if ref == relationshipID {
			return true
		}
	}
	return false
}
