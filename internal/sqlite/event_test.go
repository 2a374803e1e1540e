package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/repository"
	"github.com/stretchr/testify/require"
)

func testEvent(id, publicProjectID string) *event.Event {
	return &event.Event{
		ID:              id,
		PublicProjectID: publicProjectID,
		EventDate:       time.Now().UTC(),
		EventName:       "First trees planted",
		EventType:       "milestone",
		CustomMetaData:  map[string]string{"count": "200"},
		Attachments:     []string{},
		CreatorTenantID: "tenantA",
	}
}

func TestEventRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	ev := testEvent("ev1", "pub1")
	require.NoError(t, repo.Create(ctx, ev))

	retrieved, err := repo.Get(ctx, "ev1")
	require.NoError(t, err)
	require.Equal(t, "First trees planted", retrieved.EventName)
	require.Equal(t, "milestone", retrieved.EventType)
	require.Equal(t, map[string]string{"count": "200"}, retrieved.CustomMetaData)
	require.Equal(t, "tenantA", retrieved.CreatorTenantID)

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepository_GetMany(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	for _, id := range []string{"ev1", "ev2", "ev3"} {
		require.NoError(t, repo.Create(ctx, testEvent(id, "pub1")))
	}

	// Results come back in reference order, not insertion order.
	events, err := repo.GetMany(ctx, []string{"ev3", "ev1"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "ev3", events[0].ID)
	require.Equal(t, "ev1", events[1].ID)

	// Unknown ids are skipped silently.
	events, err = repo.GetMany(ctx, []string{"ev2", "ghost"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "ev2", events[0].ID)

	events, err = repo.GetMany(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, events)
}
