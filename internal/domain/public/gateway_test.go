package public_test

import (
	"context"
	"testing"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/domain/public"
	"github.com/candourhq/candour/internal/repository"
	"github.com/candourhq/candour/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

type fixedTenantSource string

func (s fixedTenantSource) PublicTenantID(context.Context) (string, error) {
	return string(s), nil
}

const publicTenant = "public-tenant"

func TestGateway_ListProjects(t *testing.T) {
	ctx := context.Background()
	published := []project.Copy{{PublicID: "pub1", HolderTenantID: publicTenant}}

	projects := &mocks.ProjectRepository{}
	projects.On("ListByHolder", ctx, publicTenant).Return(published, nil)

	g := public.NewGateway(fixedTenantSource(publicTenant), projects, &mocks.EventRepository{}, nil)

	got, err := g.ListProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, published, got)
}

func TestGateway_GetProject_UnpublishedIsNotFound(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "private1", publicTenant).
		Return((*project.Copy)(nil), repository.ErrNotFound)

	g := public.NewGateway(fixedTenantSource(publicTenant), projects, &mocks.EventRepository{}, nil)

	_, err := g.GetProject(ctx, "private1")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestGateway_ListEvents_ThroughPublicCopyOnly(t *testing.T) {
	ctx := context.Background()
	c := &project.Copy{PublicID: "pub1", HolderTenantID: publicTenant, Events: []string{"ev1"}}
	stored := []event.Event{{ID: "ev1"}}

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", publicTenant).Return(c, nil)

	events := &mocks.EventRepository{}
	events.On("GetMany", ctx, []string{"ev1"}).Return(stored, nil)

	g := public.NewGateway(fixedTenantSource(publicTenant), projects, events, nil)

	got, err := g.ListEvents(ctx, "pub1")
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

func TestGateway_GetEvent_RequiresPublicReference(t *testing.T) {
	ctx := context.Background()
	// ev-private predates publication, so the public copy never received it.
	c := &project.Copy{PublicID: "pub1", HolderTenantID: publicTenant, Events: []string{"ev1"}}

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", publicTenant).Return(c, nil)

	events := &mocks.EventRepository{}
	events.On("Get", ctx, "ev1").Return(&event.Event{ID: "ev1"}, nil)

	g := public.NewGateway(fixedTenantSource(publicTenant), projects, events, nil)

	got, err := g.GetEvent(ctx, "pub1", "ev1")
	require.NoError(t, err)
	require.Equal(t, "ev1", got.ID)

	_, err = g.GetEvent(ctx, "pub1", "ev-private")
	require.ErrorIs(t, err, event.ErrEventNotFound)
}
