package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ProjectService is the project replication surface the transport needs.
type ProjectService interface {
	Create(ctx context.Context, ownerTenantID string, req project.CreateRequest) (*project.Copy, error)
	Get(ctx context.Context, viewerTenantID, publicID string) (*project.Copy, error)
	ListForTenant(ctx context.Context, tenantID string) ([]project.Copy, error)
	ApplyDiff(ctx context.Context, actorTenantID, publicID string, req project.DiffRequest) (*project.DiffRecord, error)
	ListCollaborators(ctx context.Context, viewerTenantID, publicID string) ([]project.CollaboratorInfo, error)
}

// EventService is the event attachment surface the transport needs.
type EventService interface {
	Create(ctx context.Context, actorTenantID, publicProjectID string, req event.CreateRequest) (*event.Event, error)
	ListForProject(ctx context.Context, viewerTenantID, publicProjectID string) ([]event.Event, error)
	Get(ctx context.Context, viewerTenantID, publicProjectID, eventID string) (*event.Event, error)
}

// CollaboratorService is the tenancy registry surface the transport needs.
type CollaboratorService interface {
	AddCollaborator(ctx context.Context, selfTenantID, targetTenantID, friendlyName string) (relationship.View, error)
	RemoveCollaborator(ctx context.Context, selfTenantID, targetTenantID string) error
	FindCollaborator(ctx context.Context, selfTenantID, targetTenantID string) (relationship.View, error)
	ListActiveCollaborators(ctx context.Context, selfTenantID string) ([]relationship.View, error)
	ListPendingInvites(ctx context.Context, selfTenantID string) ([]relationship.View, error)
	ListOpenInvites(ctx context.Context, selfTenantID string) ([]relationship.View, error)
}

// PublicGateway is the anonymous read surface.
type PublicGateway interface {
	ListProjects(ctx context.Context) ([]project.Copy, error)
	GetProject(ctx context.Context, publicProjectID string) (*project.Copy, error)
	ListEvents(ctx context.Context, publicProjectID string) ([]event.Event, error)
	GetEvent(ctx context.Context, publicProjectID, eventID string) (*event.Event, error)
}

// AuthService handles signup, login, and application credentials.
type AuthService interface {
	Signup(ctx context.Context, email, password, companyName string) (*auth.Credentials, error)
	Login(ctx context.Context, email, password string) (*auth.Credentials, error)
	CreateApplication(ctx context.Context, tenantID string) (*auth.AppCredentials, error)
	RollApplicationSecret(ctx context.Context, tenantID, appID string) (*auth.AppCredentials, error)
	DeleteApplication(ctx context.Context, tenantID, appID string) error
}

// Services bundles everything the router dispatches to.
type Services struct {
	Projects      ProjectService
	Events        EventService
	Collaborators CollaboratorService
	Public        PublicGateway
	Auth          AuthService
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewRouter creates the HTTP router with middleware. metricsHandler may be
// nil when metrics exposure is disabled.
func NewRouter(services Services, resolver TenantResolver, logger *slog.Logger, m *metrics.Metrics, metricsHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware(m))

	srv := &Server{services: services, logger: logger}

	r.Post("/signup", srv.handleSignup)
	r.Post("/login", srv.handleLogin)

	r.Get("/health", srv.handleHealth)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/public/projects", func(r chi.Router) {
		r.Get("/", srv.handlePublicListProjects)
		r.Get("/{projectID}", srv.handlePublicGetProject)
		r.Get("/{projectID}/events", srv.handlePublicListEvents)
		r.Get("/{projectID}/events/{eventID}", srv.handlePublicGetEvent)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(resolver))

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", srv.handleCreateProject)
			r.Get("/", srv.handleListProjects)
			r.Get("/{projectID}", srv.handleGetProject)
			r.Patch("/{projectID}", srv.handlePatchProject)
			r.Delete("/{projectID}", methodNotAllowed("deleting a project is not allowed"))

			r.Get("/{projectID}/collaborators", srv.handleListProjectCollaborators)

			r.Get("/{projectID}/events", srv.handleListEvents)
			r.Post("/{projectID}/events", srv.handleCreateEvent)
			r.Get("/{projectID}/events/{eventID}", srv.handleGetEvent)
			r.Delete("/{projectID}/events/{eventID}", methodNotAllowed("deleting an event is not allowed"))
			r.Patch("/{projectID}/events/{eventID}", methodNotAllowed("updating an event is not allowed"))
		})

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", srv.handleCreateApplication)
			r.Post("/{appID}/secret", srv.handleRollApplicationSecret)
			r.Delete("/{appID}", srv.handleDeleteApplication)
		})

		r.Route("/collaborators", func(r chi.Router) {
			r.Get("/", srv.handleListCollaborators)
			r.Post("/", srv.handleAddCollaborator)
			r.Get("/open", srv.handleListOpenInvites)
			r.Get("/pending", srv.handleListPendingInvites)
			r.Get("/{tenantID}", srv.handleGetCollaborator)
			r.Delete("/{tenantID}", srv.handleRemoveCollaborator)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func metricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
