package relationship

import (
	"sort"
	"time"
)

// Status is derived from the two participant entries, never stored.
type Status string

const (
	// StatusActive means both participants have accepted the relationship.
	StatusActive Status = "ACTIVE"
	// StatusPending means at least one side has not accepted (or has revoked).
	StatusPending Status = "PENDING"
)

// ParticipantInfo is one tenant's side of a relationship. FriendlyName is the
// name this participant uses for the counterpart, not for itself.
type ParticipantInfo struct {
	TenantID       string    `json:"tenant_id"`
	FriendlyName   string    `json:"friendly_name"`
	Accepted       bool      `json:"accepted"`
	SharedProjects []string  `json:"shared_projects"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Relationship links exactly two tenants. It is keyed by an order-independent
// hash of both tenant ids so either side can look it up, and it is never
// deleted: revocation flips the revoking side's entry back to unaccepted.
type Relationship struct {
	ID           string                     `json:"id"`
	Hash         string                     `json:"hash"`
	Participants map[string]ParticipantInfo `json:"participants"`
}

// View is one participant's perspective on a relationship.
type View struct {
	TenantID       string   `json:"tenantID"`
	FriendlyName   string   `json:"friendlyName"`
	Status         Status   `json:"status"`
	SharedProjects []string `json:"projects"`
}

// PairHash builds the order-independent lookup key for a tenant pair.
func PairHash(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + ids[1]
}

// Status derives the relationship status from the participant entries.
func (r *Relationship) Status() Status {
	for _, p := range r.Participants {
		if !p.Accepted {
			return StatusPending
		}
	}
	return StatusActive
}

// CounterpartID returns the other participant's tenant id.
func (r *Relationship) CounterpartID(tenantID string) (string, bool) {
	for id := range r.Participants {
		if id != tenantID {
			return id, true
		}
	}
	return "", false
}

// Accept flips the accepter's entry to accepted with its chosen friendly name.
// No-op if the tenant has no entry.
func (r *Relationship) Accept(tenantID, friendlyName string, now time.Time) {
	p, ok := r.Participants[tenantID]
	if !ok {
		return
	}
	p.Accepted = true
	p.FriendlyName = friendlyName
	p.UpdatedAt = now
	r.Participants[tenantID] = p
}

// Revoke flips the tenant's own entry to not-accepted. A tenant can only
// revoke its own side, never the counterpart's.
func (r *Relationship) Revoke(tenantID string, now time.Time) {
	p, ok := r.Participants[tenantID]
	if !ok {
		return
	}
	p.Accepted = false
	p.UpdatedAt = now
	r.Participants[tenantID] = p
}

// ViewAs renders the relationship from one participant's perspective.
func (r *Relationship) ViewAs(viewerTenantID string) (View, error) {
	entry, ok := r.Participants[viewerTenantID]
	if !ok {
		return View{}, ErrNoParticipant
	}
	counterpartID, _ := r.CounterpartID(viewerTenantID)
	return View{
		TenantID:       counterpartID,
		FriendlyName:   entry.FriendlyName,
		Status:         r.Status(),
		SharedProjects: entry.SharedProjects,
	}, nil
}
