package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/repository"
	"github.com/candourhq/candour/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func copyFor(publicID, owner, holder string, collaborators ...string) *project.Copy {
	return &project.Copy{
		InternalID:     "internal-" + holder,
		PublicID:       publicID,
		OwnerTenantID:  owner,
		HolderTenantID: holder,
		Name:           "Plant 2000 trees",
		Status:         project.StatusActive,
		StartedDate:    time.Now(),
		CustomMetaData: map[string]string{},
		Events:         []string{},
		Collaborators:  collaborators,
	}
}

func TestEventService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := event.NewService(&mocks.EventRepository{}, &mocks.ProjectRepository{}, nil, nil)

	_, err := svc.Create(ctx, "tenantA", "pub1", event.CreateRequest{EventName: "", EventType: "milestone"})
	require.ErrorIs(t, err, event.ErrInvalidInput)

	_, err = svc.Create(ctx, "tenantA", "pub1", event.CreateRequest{EventName: "Planted", EventType: "  "})
	require.ErrorIs(t, err, event.ErrInvalidInput)
}

func TestEventService_CreateFansOutToAllCopies(t *testing.T) {
	ctx := context.Background()
	ownerCopy := copyFor("pub1", "tenantA", "tenantA", "tenantA", "tenantB")
	bCopy := copyFor("pub1", "tenantA", "tenantB", "tenantA", "tenantB")

	events := &mocks.EventRepository{}
	events.On("Create", ctx, mock.Anything).Return(nil)

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantA").Return(ownerCopy, nil)
	projects.On("GetCopy", ctx, "pub1", "tenantB").Return(bCopy, nil)
	projects.On("Save", ctx, mock.Anything).Return(nil)

	svc := event.NewService(events, projects, nil, nil)

	ev, err := svc.Create(ctx, "tenantA", "pub1", event.CreateRequest{
		EventName: "First trees planted",
		EventType: "milestone",
	})
	require.NoError(t, err)
	require.Equal(t, "tenantA", ev.CreatorTenantID)
	require.Contains(t, ownerCopy.Events, ev.ID)
	require.Contains(t, bCopy.Events, ev.ID)
}

func TestEventService_CreateByCollaboratorUsesOwnerSet(t *testing.T) {
	ctx := context.Background()
	// The collaborator's mirror lags: it does not list tenantC yet.
	ownerCopy := copyFor("pub1", "tenantA", "tenantA", "tenantA", "tenantB", "tenantC")
	bCopy := copyFor("pub1", "tenantA", "tenantB", "tenantA", "tenantB")
	cCopy := copyFor("pub1", "tenantA", "tenantC", "tenantA", "tenantB", "tenantC")

	events := &mocks.EventRepository{}
	events.On("Create", ctx, mock.Anything).Return(nil)

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantA").Return(ownerCopy, nil)
	projects.On("GetCopy", ctx, "pub1", "tenantB").Return(bCopy, nil)
	projects.On("GetCopy", ctx, "pub1", "tenantC").Return(cCopy, nil)
	projects.On("Save", ctx, mock.Anything).Return(nil)

	svc := event.NewService(events, projects, nil, nil)

	ev, err := svc.Create(ctx, "tenantB", "pub1", event.CreateRequest{
		EventName: "Soil prepared",
		EventType: "update",
	})
	require.NoError(t, err)
	require.Contains(t, ownerCopy.Events, ev.ID)
	require.Contains(t, bCopy.Events, ev.ID)
	require.Contains(t, cCopy.Events, ev.ID)
}

func TestEventService_CreateInactiveProject(t *testing.T) {
	ctx := context.Background()
	c := copyFor("pub1", "tenantA", "tenantA", "tenantA")
	c.Status = project.StatusInactive

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantA").Return(c, nil)

	svc := event.NewService(&mocks.EventRepository{}, projects, nil, nil)

	_, err := svc.Create(ctx, "tenantA", "pub1", event.CreateRequest{EventName: "x", EventType: "y"})
	require.ErrorIs(t, err, project.ErrProjectInactive)
}

func TestEventService_CreateByRemovedCollaborator(t *testing.T) {
	ctx := context.Background()
	// Removal leaves tenantB an orphaned snapshot that still lists tenantB,
	// so only the owner's canonical set can reject the write.
	orphan := copyFor("pub1", "tenantA", "tenantB", "tenantA", "tenantB")
	ownerCopy := copyFor("pub1", "tenantA", "tenantA", "tenantA")

	events := &mocks.EventRepository{}
	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantB").Return(orphan, nil)
	projects.On("GetCopy", ctx, "pub1", "tenantA").Return(ownerCopy, nil)

	svc := event.NewService(events, projects, nil, nil)

	_, err := svc.Create(ctx, "tenantB", "pub1", event.CreateRequest{EventName: "x", EventType: "y"})
	require.ErrorIs(t, err, project.ErrProjectInactive)
	events.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestEventService_CreateSurvivesPartialFanout(t *testing.T) {
	ctx := context.Background()
	ownerCopy := copyFor("pub1", "tenantA", "tenantA", "tenantA", "tenantB")

	events := &mocks.EventRepository{}
	events.On("Create", ctx, mock.Anything).Return(nil)

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantA").Return(ownerCopy, nil)
	projects.On("GetCopy", ctx, "pub1", "tenantB").Return((*project.Copy)(nil), repository.ErrNotFound)
	projects.On("Save", ctx, mock.Anything).Return(nil)

	svc := event.NewService(events, projects, nil, nil)

	ev, err := svc.Create(ctx, "tenantA", "pub1", event.CreateRequest{
		EventName: "First trees planted",
		EventType: "milestone",
	})
	require.NoError(t, err)
	require.Contains(t, ownerCopy.Events, ev.ID)
}

func TestEventService_ListForProjectUsesViewerCopy(t *testing.T) {
	ctx := context.Background()
	viewer := copyFor("pub1", "tenantA", "tenantB", "tenantA", "tenantB")
	viewer.Events = []string{"ev1", "ev2"}
	stored := []event.Event{{ID: "ev1"}, {ID: "ev2"}}

	events := &mocks.EventRepository{}
	events.On("GetMany", ctx, []string{"ev1", "ev2"}).Return(stored, nil)

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantB").Return(viewer, nil)

	svc := event.NewService(events, projects, nil, nil)

	got, err := svc.ListForProject(ctx, "tenantB", "pub1")
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

func TestEventService_GetRequiresReference(t *testing.T) {
	ctx := context.Background()
	// The viewer joined after ev1 was created, so its copy never received it.
	viewer := copyFor("pub1", "tenantA", "tenantC", "tenantA", "tenantC")

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantC").Return(viewer, nil)

	svc := event.NewService(&mocks.EventRepository{}, projects, nil, nil)

	_, err := svc.Get(ctx, "tenantC", "pub1", "ev1")
	require.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestEventService_GetReturnsReferencedEvent(t *testing.T) {
	ctx := context.Background()
	viewer := copyFor("pub1", "tenantA", "tenantA", "tenantA")
	viewer.Events = []string{"ev1"}
	stored := &event.Event{ID: "ev1", PublicProjectID: "pub1"}

	events := &mocks.EventRepository{}
	events.On("Get", ctx, "ev1").Return(stored, nil)

	projects := &mocks.ProjectRepository{}
	projects.On("GetCopy", ctx, "pub1", "tenantA").Return(viewer, nil)

	svc := event.NewService(events, projects, nil, nil)

	got, err := svc.Get(ctx, "tenantA", "pub1", "ev1")
	require.NoError(t, err)
	require.Equal(t, stored, got)
}
