package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/domain/public"
	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/domain/tenancy"
	"github.com/candourhq/candour/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db *sqlite.DB

	tenancySvc *tenancy.Service
	projectSvc *project.Service
	eventSvc   *event.Service
	gateway    *public.Gateway
	authSvc    *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	tenantRepo := sqlite.NewTenantRepository(db)
	relationshipRepo := sqlite.NewRelationshipRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	appRepo := sqlite.NewApplicationRepository(db)

	relationshipStore := relationship.NewStore(relationshipRepo, nil)
	tenancySvc := tenancy.NewService(tenantRepo, relationshipStore, projectRepo, nil)
	projectSvc := project.NewService(projectRepo, tenancySvc, tenancySvc, nil, nil)
	eventSvc := event.NewService(eventRepo, projectRepo, nil, nil)
	gateway := public.NewGateway(tenancySvc, projectRepo, eventRepo, nil)
	authSvc := auth.NewService(userRepo, appRepo, tenancySvc, []byte("integration-key"), time.Hour, nil)

	return &testEnv{
		db:         db,
		tenancySvc: tenancySvc,
		projectSvc: projectSvc,
		eventSvc:   eventSvc,
		gateway:    gateway,
		authSvc:    authSvc,
	}
}

// connect establishes an active relationship between two tenants: one side
// invites, the other accepts.
func (env *testEnv) connect(t *testing.T, ctx context.Context, a, b string) {
	t.Helper()

	view, err := env.tenancySvc.AddCollaborator(ctx, a, b, "Partner "+b)
	require.NoError(t, err)
	require.Equal(t, relationship.StatusPending, view.Status)

	view, err = env.tenancySvc.AddCollaborator(ctx, b, a, "Partner "+a)
	require.NoError(t, err)
	require.Equal(t, relationship.StatusActive, view.Status)
}

func TestIntegration_CollaborationLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tenantA, err := env.tenancySvc.Create(ctx, "Alpha Inc")
	require.NoError(t, err)
	tenantB, err := env.tenancySvc.Create(ctx, "Bravo Corp")
	require.NoError(t, err)
	tenantC, err := env.tenancySvc.Create(ctx, "Curie Labs")
	require.NoError(t, err)

	// A invites B; B sees the open invite and accepts.
	_, err = env.tenancySvc.AddCollaborator(ctx, tenantA.ID, tenantB.ID, "Bravo")
	require.NoError(t, err)

	open, err := env.tenancySvc.ListOpenInvites(ctx, tenantB.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, tenantA.ID, open[0].TenantID)

	pending, err := env.tenancySvc.ListPendingInvites(ctx, tenantA.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = env.tenancySvc.AddCollaborator(ctx, tenantB.ID, tenantA.ID, "Alpha")
	require.NoError(t, err)

	active, err := env.tenancySvc.ListActiveCollaborators(ctx, tenantA.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)

	// A creates a shared project. Both tenants hold a copy.
	owner, err := env.projectSvc.Create(ctx, tenantA.ID, project.CreateRequest{
		Name:          "Plant 2000 trees",
		Description:   "Reforestation effort",
		Collaborators: []string{tenantB.ID},
	})
	require.NoError(t, err)

	bCopy, err := env.projectSvc.Get(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Equal(t, owner.PublicID, bCopy.PublicID)
	require.NotEqual(t, owner.InternalID, bCopy.InternalID)

	// An event fans out to both copies.
	ev1, err := env.eventSvc.Create(ctx, tenantA.ID, owner.PublicID, event.CreateRequest{
		EventName: "Soil prepared",
		EventType: "update",
	})
	require.NoError(t, err)

	bEvents, err := env.eventSvc.ListForProject(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Len(t, bEvents, 1)

	// C joins late and never sees ev1.
	env.connect(t, ctx, tenantA.ID, tenantC.ID)
	_, err = env.projectSvc.ApplyDiff(ctx, tenantA.ID, owner.PublicID, project.DiffRequest{
		Collaborators: []string{tenantB.ID, tenantC.ID},
	})
	require.NoError(t, err)

	cEvents, err := env.eventSvc.ListForProject(ctx, tenantC.ID, owner.PublicID)
	require.NoError(t, err)
	require.Empty(t, cEvents)

	_, err = env.eventSvc.Get(ctx, tenantC.ID, owner.PublicID, ev1.ID)
	require.ErrorIs(t, err, event.ErrEventNotFound)

	// A rename reaches every current copy.
	name := "Plant 3000 trees"
	record, err := env.projectSvc.ApplyDiff(ctx, tenantA.ID, owner.PublicID, project.DiffRequest{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, record.Name)

	for _, tenantID := range []string{tenantB.ID, tenantC.ID} {
		c, err := env.projectSvc.Get(ctx, tenantID, owner.PublicID)
		require.NoError(t, err)
		require.Equal(t, name, c.Name)
		require.Empty(t, c.Diffs, "diff history stays on the owner copy")
	}

	ownerCopy, err := env.projectSvc.Get(ctx, tenantA.ID, owner.PublicID)
	require.NoError(t, err)
	require.Len(t, ownerCopy.Diffs, 2)

	// A new event reaches all three copies.
	ev2, err := env.eventSvc.Create(ctx, tenantB.ID, owner.PublicID, event.CreateRequest{
		EventName: "First trees planted",
		EventType: "milestone",
	})
	require.NoError(t, err)

	cEvents, err = env.eventSvc.ListForProject(ctx, tenantC.ID, owner.PublicID)
	require.NoError(t, err)
	require.Len(t, cEvents, 1)
	require.Equal(t, ev2.ID, cEvents[0].ID)
}

func TestIntegration_RemovalOrphansAndReAddStartsFresh(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tenantA, err := env.tenancySvc.Create(ctx, "Alpha Inc")
	require.NoError(t, err)
	tenantB, err := env.tenancySvc.Create(ctx, "Bravo Corp")
	require.NoError(t, err)
	env.connect(t, ctx, tenantA.ID, tenantB.ID)

	owner, err := env.projectSvc.Create(ctx, tenantA.ID, project.CreateRequest{
		Name:          "Plant 2000 trees",
		Collaborators: []string{tenantB.ID},
	})
	require.NoError(t, err)

	_, err = env.eventSvc.Create(ctx, tenantA.ID, owner.PublicID, event.CreateRequest{
		EventName: "Soil prepared",
		EventType: "update",
	})
	require.NoError(t, err)

	// Removing the relationship is rejected while the project still links
	// the pair.
	err = env.tenancySvc.RemoveCollaborator(ctx, tenantA.ID, tenantB.ID)
	require.ErrorIs(t, err, tenancy.ErrProjectStillShared)

	// Drop B from the project, then sever the relationship.
	_, err = env.projectSvc.ApplyDiff(ctx, tenantA.ID, owner.PublicID, project.DiffRequest{
		Collaborators: []string{},
	})
	require.NoError(t, err)
	require.NoError(t, env.tenancySvc.RemoveCollaborator(ctx, tenantA.ID, tenantB.ID))

	// B keeps its orphaned snapshot, events included, but cannot write.
	orphan, err := env.projectSvc.Get(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Contains(t, orphan.Collaborators, tenantB.ID)

	bEvents, err := env.eventSvc.ListForProject(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Len(t, bEvents, 1)

	_, err = env.eventSvc.Create(ctx, tenantB.ID, owner.PublicID, event.CreateRequest{
		EventName: "Should fail",
		EventType: "update",
	})
	require.ErrorIs(t, err, project.ErrProjectInactive)

	aEvents, err := env.eventSvc.ListForProject(ctx, tenantA.ID, owner.PublicID)
	require.NoError(t, err)
	require.Len(t, aEvents, 1)

	// Owner-side changes no longer reach the orphan.
	name := "Renamed after removal"
	_, err = env.projectSvc.ApplyDiff(ctx, tenantA.ID, owner.PublicID, project.DiffRequest{Name: &name})
	require.NoError(t, err)

	orphan, err = env.projectSvc.Get(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Equal(t, "Plant 2000 trees", orphan.Name)

	// Re-adding B replaces the orphan with a fresh, history-free copy. B's
	// side of the old relationship is still accepted, so one re-invite from A
	// reactivates it.
	view, err := env.tenancySvc.AddCollaborator(ctx, tenantA.ID, tenantB.ID, "Bravo")
	require.NoError(t, err)
	require.Equal(t, relationship.StatusActive, view.Status)
	_, err = env.projectSvc.ApplyDiff(ctx, tenantA.ID, owner.PublicID, project.DiffRequest{
		Collaborators: []string{tenantB.ID},
	})
	require.NoError(t, err)

	fresh, err := env.projectSvc.Get(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Equal(t, name, fresh.Name)
	require.NotEqual(t, orphan.InternalID, fresh.InternalID)

	bEvents, err = env.eventSvc.ListForProject(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Empty(t, bEvents)
}

func TestIntegration_RemovedCollaboratorCanSeverRelationship(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tenantA, err := env.tenancySvc.Create(ctx, "Alpha Inc")
	require.NoError(t, err)
	tenantB, err := env.tenancySvc.Create(ctx, "Bravo Corp")
	require.NoError(t, err)
	env.connect(t, ctx, tenantA.ID, tenantB.ID)

	owner, err := env.projectSvc.Create(ctx, tenantA.ID, project.CreateRequest{
		Name:          "Plant 2000 trees",
		Collaborators: []string{tenantB.ID},
	})
	require.NoError(t, err)

	// While the project links the pair, the shared-in side is blocked too.
	err = env.tenancySvc.RemoveCollaborator(ctx, tenantB.ID, tenantA.ID)
	require.ErrorIs(t, err, tenancy.ErrProjectStillShared)

	_, err = env.projectSvc.ApplyDiff(ctx, tenantA.ID, owner.PublicID, project.DiffRequest{
		Collaborators: []string{},
	})
	require.NoError(t, err)

	// B's mirror is now an orphaned snapshot that still lists B, but the
	// owner's canonical copy no longer does, so B can sever the relationship.
	orphan, err := env.projectSvc.Get(ctx, tenantB.ID, owner.PublicID)
	require.NoError(t, err)
	require.Contains(t, orphan.Collaborators, tenantB.ID)

	require.NoError(t, env.tenancySvc.RemoveCollaborator(ctx, tenantB.ID, tenantA.ID))

	view, err := env.tenancySvc.FindCollaborator(ctx, tenantB.ID, tenantA.ID)
	require.NoError(t, err)
	require.Equal(t, relationship.StatusPending, view.Status)
}

func TestIntegration_PublicExposure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tenantA, err := env.tenancySvc.Create(ctx, "Alpha Inc")
	require.NoError(t, err)

	published, err := env.projectSvc.Create(ctx, tenantA.ID, project.CreateRequest{
		Name:   "Open reforestation ledger",
		Public: true,
	})
	require.NoError(t, err)

	private, err := env.projectSvc.Create(ctx, tenantA.ID, project.CreateRequest{
		Name: "Internal planning",
	})
	require.NoError(t, err)

	// Anonymous reads resolve through the public tenant's copies only.
	listed, err := env.gateway.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, published.PublicID, listed[0].PublicID)

	_, err = env.gateway.GetProject(ctx, private.PublicID)
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	ev, err := env.eventSvc.Create(ctx, tenantA.ID, published.PublicID, event.CreateRequest{
		EventName: "First trees planted",
		EventType: "milestone",
	})
	require.NoError(t, err)

	publicEvents, err := env.gateway.ListEvents(ctx, published.PublicID)
	require.NoError(t, err)
	require.Len(t, publicEvents, 1)
	require.Equal(t, ev.ID, publicEvents[0].ID)

	got, err := env.gateway.GetEvent(ctx, published.PublicID, ev.ID)
	require.NoError(t, err)
	require.Equal(t, ev.ID, got.ID)
}

func TestIntegration_SignupLoginFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	creds, err := env.authSvc.Signup(ctx, "founder@alpha.example", "long enough password", "Alpha Inc")
	require.NoError(t, err)
	require.NotEmpty(t, creds.Token)

	tenantID, err := env.authSvc.ResolveTenant(ctx, creds.Token)
	require.NoError(t, err)
	require.Equal(t, creds.TenantID, tenantID)

	// The tenant registered at signup is usable right away.
	_, err = env.projectSvc.Create(ctx, tenantID, project.CreateRequest{Name: "First project"})
	require.NoError(t, err)

	_, err = env.authSvc.Login(ctx, "founder@alpha.example", "long enough password")
	require.NoError(t, err)

	// The public tenant's name cannot be claimed through signup.
	_, err = env.authSvc.Signup(ctx, "sneak@example.com", "long enough password", "public-transparency-service")
	require.ErrorIs(t, err, tenancy.ErrReservedName)
}

func TestIntegration_ApplicationCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	creds, err := env.authSvc.Signup(ctx, "founder@alpha.example", "long enough password", "Alpha Inc")
	require.NoError(t, err)
	other, err := env.authSvc.Signup(ctx, "founder@bravo.example", "long enough password", "Bravo Corp")
	require.NoError(t, err)

	appCreds, err := env.authSvc.CreateApplication(ctx, creds.TenantID)
	require.NoError(t, err)

	// The appID/secret pair logs in through the same endpoint as a user and
	// yields a token scoped to the owning tenant.
	appLogin, err := env.authSvc.Login(ctx, appCreds.AppID, appCreds.Secret)
	require.NoError(t, err)
	tenantID, err := env.authSvc.ResolveTenant(ctx, appLogin.Token)
	require.NoError(t, err)
	require.Equal(t, creds.TenantID, tenantID)

	_, err = env.projectSvc.Create(ctx, tenantID, project.CreateRequest{Name: "Machine created"})
	require.NoError(t, err)

	// Only the owning tenant may roll or delete.
	_, err = env.authSvc.RollApplicationSecret(ctx, other.TenantID, appCreds.AppID)
	require.ErrorIs(t, err, auth.ErrNotApplicationOwner)

	rolled, err := env.authSvc.RollApplicationSecret(ctx, creds.TenantID, appCreds.AppID)
	require.NoError(t, err)
	_, err = env.authSvc.Login(ctx, appCreds.AppID, appCreds.Secret)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = env.authSvc.Login(ctx, rolled.AppID, rolled.Secret)
	require.NoError(t, err)

	require.NoError(t, env.authSvc.DeleteApplication(ctx, creds.TenantID, appCreds.AppID))
	_, err = env.authSvc.Login(ctx, rolled.AppID, rolled.Secret)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	err = env.authSvc.DeleteApplication(ctx, creds.TenantID, appCreds.AppID)
	require.ErrorIs(t, err, auth.ErrApplicationNotFound)
}
