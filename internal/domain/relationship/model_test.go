package relationship_test

import (
	"testing"
	"time"

	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/stretchr/testify/require"
)

func TestPairHash_OrderIndependent(t *testing.T) {
	require.Equal(t, relationship.PairHash("a", "b"), relationship.PairHash("b", "a"))
	require.NotEqual(t, relationship.PairHash("a", "b"), relationship.PairHash("a", "c"))
}

func newTestRelationship(aAccepted, bAccepted bool) *relationship.Relationship {
	now := time.Now()
	return &relationship.Relationship{
		ID:   "rel1",
		Hash: relationship.PairHash("tenantA", "tenantB"),
		Participants: map[string]relationship.ParticipantInfo{
			"tenantA": {TenantID: "tenantA", FriendlyName: "Bravo Corp", Accepted: aAccepted, SharedProjects: []string{}, UpdatedAt: now},
			"tenantB": {TenantID: "tenantB", FriendlyName: "Alpha Inc", Accepted: bAccepted, SharedProjects: []string{}, UpdatedAt: now},
		},
	}
}

func TestRelationship_StatusDerivation(t *testing.T) {
	require.Equal(t, relationship.StatusActive, newTestRelationship(true, true).Status())
	require.Equal(t, relationship.StatusPending, newTestRelationship(true, false).Status())
	require.Equal(t, relationship.StatusPending, newTestRelationship(false, false).Status())
}

func TestRelationship_AcceptThenRevoke(t *testing.T) {
	rel := newTestRelationship(true, false)
	now := time.Now()

	rel.Accept("tenantB", "My Partner", now)
	require.Equal(t, relationship.StatusActive, rel.Status())
	require.Equal(t, "My Partner", rel.Participants["tenantB"].FriendlyName)

	rel.Revoke("tenantB", now)
	require.Equal(t, relationship.StatusPending, rel.Status())
	// the counterpart's side is untouched
	require.True(t, rel.Participants["tenantA"].Accepted)
}

func TestRelationship_RevokeUnknownTenantIsNoop(t *testing.T) {
	rel := newTestRelationship(true, true)
	rel.Revoke("stranger", time.Now())
	require.Equal(t, relationship.StatusActive, rel.Status())
}

func TestRelationship_ViewAs(t *testing.T) {
	rel := newTestRelationship(true, false)

	view, err := rel.ViewAs("tenantA")
	require.NoError(t, err)
	require.Equal(t, "tenantB", view.TenantID)
	require.Equal(t, "Bravo Corp", view.FriendlyName)
	require.Equal(t, relationship.StatusPending, view.Status)

	_, err = rel.ViewAs("stranger")
	require.ErrorIs(t, err, relationship.ErrNoParticipant)
}
