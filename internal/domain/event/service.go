package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/metrics"
	"github.com/candourhq/candour/internal/repository"
	"github.com/google/uuid"
)

// Service is the event attachment engine. Events are created once and fanned
// out by reference to every collaborator copy at creation time only; tenants
// joining later never see them.
type Service struct {
	events   Repository
	projects ProjectStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a new event service.
func NewService(events Repository, projects ProjectStore, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{events: events, projects: projects, logger: logger, metrics: m}
}

// CreateRequest defines event creation inputs.
type CreateRequest struct {
	EventName      string
	EventType      string
	CustomMetaData map[string]string
	Attachments    []string
}

// Create attaches a new event to the project and fans its reference out to
// the canonical collaborator set read from the owner's copy. Fan-out is
// at-most-once, best-effort: a copy missed here never receives the reference
// later.
func (s *Service) Create(ctx context.Context, actorTenantID, publicProjectID string, req CreateRequest) (*Event, error) {
	if strings.TrimSpace(req.EventName) == "" || strings.TrimSpace(req.EventType) == "" {
		return nil, ErrInvalidInput
	}

	actorCopy, err := s.projects.GetCopy(ctx, publicProjectID, actorTenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting actor copy: %w", err)
	}
	// The owner's copy carries the canonical collaborator set and status. The
	// actor's mirror may lag behind a concurrent diff, or be the orphaned
	// snapshot left behind by a removal, so the write gate must not trust it.
	ownerCopy := actorCopy
	if !actorCopy.IsOwner(actorTenantID) {
		ownerCopy, err = s.projects.GetCopy(ctx, publicProjectID, actorCopy.OwnerTenantID)
		if err != nil {
			return nil, fmt.Errorf("%w: owner copy of project %s", project.ErrCopyMissing, publicProjectID)
		}
	}
	if !ownerCopy.IsActiveFor(actorTenantID) {
		return nil, project.ErrProjectInactive
	}

	meta := req.CustomMetaData
	if meta == nil {
		meta = map[string]string{}
	}
	attachments := req.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	ev := &Event{
		ID:              uuid.NewString(),
		PublicProjectID: publicProjectID,
		EventDate:       time.Now(),
		EventName:       req.EventName,
		EventType:       req.EventType,
		CustomMetaData:  meta,
		Attachments:     attachments,
		CreatorTenantID: actorTenantID,
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	for _, tenantID := range ownerCopy.Collaborators {
		err := s.attachTo(ctx, publicProjectID, tenantID, ev.ID)
		s.metrics.ObserveFanout("event", err)
		if err != nil && s.logger != nil {
			s.logger.Warn("event fan-out failed", "project", publicProjectID, "tenant", tenantID, "event", ev.ID, "error", err)
		}
	}

	s.metrics.IncEventsCreated()
	return ev, nil
}

func (s *Service) attachTo(ctx context.Context, publicProjectID, tenantID, eventID string) error {
	c, err := s.projects.GetCopy(ctx, publicProjectID, tenantID)
	if err != nil {
		return fmt.Errorf("resolving copy for tenant %s: %w", tenantID, err)
	}
	if c.HasEvent(eventID) {
		return nil
	}
	c.Events = append(c.Events, eventID)
	return s.projects.Save(ctx, c)
}

// ListForProject returns the events visible through the viewer's copy.
// Removed collaborators keep seeing everything fanned out before removal.
func (s *Service) ListForProject(ctx context.Context, viewerTenantID, publicProjectID string) ([]Event, error) {
	c, err := s.projects.GetCopy(ctx, publicProjectID, viewerTenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting viewer copy: %w", err)
	}
	events, err := s.events.GetMany(ctx, c.Events)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return events, nil
}

// Get returns one event, visible only if the viewer's copy references it.
func (s *Service) Get(ctx context.Context, viewerTenantID, publicProjectID, eventID string) (*Event, error) {
	c, err := s.projects.GetCopy(ctx, publicProjectID, viewerTenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting viewer copy: %w", err)
	}
	if !c.HasEvent(eventID) {
		return nil, ErrEventNotFound
	}
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("event %s referenced by copy but missing: %w", eventID, err)
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return ev, nil
}

// IsVisibleTo reports whether the event was fanned out to the given copy.
func IsVisibleTo(ev *Event, c *project.Copy) bool {
	return c.HasEvent(ev.ID)
}
