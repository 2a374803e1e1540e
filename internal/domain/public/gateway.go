package public

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/repository"
)

// TenantSource resolves the reserved public tenant.
type TenantSource interface {
	PublicTenantID(ctx context.Context) (string, error)
}

// ProjectSource resolves the public tenant's project copies.
type ProjectSource interface {
	GetCopy(ctx context.Context, publicID, holderTenantID string) (*project.Copy, error)
	ListByHolder(ctx context.Context, holderTenantID string) ([]project.Copy, error)
}

// EventSource loads events referenced by public copies.
type EventSource interface {
	Get(ctx context.Context, id string) (*event.Event, error)
	GetMany(ctx context.Context, ids []string) ([]event.Event, error)
}

// Gateway serves anonymous reads. Every lookup resolves exclusively through
// the public tenant's copies, so only explicitly published state is ever
// exposed.
type Gateway struct {
	tenants  TenantSource
	projects ProjectSource
	events   EventSource
	logger   *slog.Logger
}

// NewGateway creates a new public exposure gateway.
func NewGateway(tenants TenantSource, projects ProjectSource, events EventSource, logger *slog.Logger) *Gateway {
	return &Gateway{tenants: tenants, projects: projects, events: events, logger: logger}
}

// ListProjects returns every project copy the public tenant holds.
func (g *Gateway) ListProjects(ctx context.Context) ([]project.Copy, error) {
	publicTenantID, err := g.tenants.PublicTenantID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving public tenant: %w", err)
	}
	copies, err := g.projects.ListByHolder(ctx, publicTenantID)
	if err != nil {
		return nil, fmt.Errorf("listing public projects: %w", err)
	}
	return copies, nil
}

// GetProject returns the public tenant's copy of the project, or
// project.ErrProjectNotFound when the project was never published.
func (g *Gateway) GetProject(ctx context.Context, publicProjectID string) (*project.Copy, error) {
	publicTenantID, err := g.tenants.PublicTenantID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving public tenant: %w", err)
	}
	c, err := g.projects.GetCopy(ctx, publicProjectID, publicTenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting public copy: %w", err)
	}
	return c, nil
}

// ListEvents returns the events visible through the public copy.
func (g *Gateway) ListEvents(ctx context.Context, publicProjectID string) ([]event.Event, error) {
	c, err := g.GetProject(ctx, publicProjectID)
	if err != nil {
		return nil, err
	}
	events, err := g.events.GetMany(ctx, c.Events)
	if err != nil {
		return nil, fmt.Errorf("loading public events: %w", err)
	}
	return events, nil
}

// GetEvent returns one event, visible only if the public copy references it.
func (g *Gateway) GetEvent(ctx context.Context, publicProjectID, eventID string) (*event.Event, error) {
	c, err := g.GetProject(ctx, publicProjectID)
	if err != nil {
		return nil, err
	}
	if !c.HasEvent(eventID) {
		return nil, event.ErrEventNotFound
	}
	ev, err := g.events.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("getting public event: %w", err)
	}
	return ev, nil
}
