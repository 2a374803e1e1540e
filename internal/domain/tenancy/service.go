package tenancy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/repository"
	"github.com/google/uuid"
)

// Service is the tenancy registry. It owns the per-tenant record of project
// and relationship references and orchestrates collaborator addition and
// removal through the relationship store.
type Service struct {
	tenants       Repository
	relationships *relationship.Store
	projects      ProjectReader
	logger        *slog.Logger

	publicMu sync.Mutex
	publicID string
}

// NewService creates a new tenancy service.
func NewService(tenants Repository, relationships *relationship.Store, projects ProjectReader, logger *slog.Logger) *Service {
	return &Service{tenants: tenants, relationships: relationships, projects: projects, logger: logger}
}

// Create registers a new tenant. The public tenant's display name is
// reserved and rejected here; the singleton itself is materialized through
// PublicTenantID only.
func (s *Service) Create(ctx context.Context, displayName string) (*Tenant, error) {
	if strings.EqualFold(strings.TrimSpace(displayName), PublicTenantName) {
		return nil, ErrReservedName
	}
	return s.createTenant(ctx, displayName)
}

func (s *Service) createTenant(ctx context.Context, displayName string) (*Tenant, error) {
	t := &Tenant{
		ID:               uuid.NewString(),
		DisplayName:      displayName,
		ProjectRefs:      []string{},
		RelationshipRefs: []string{},
		CreatedAt:        time.Now(),
	}
	if err := s.tenants.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating tenant: %w", err)
	}
	return t, nil
}

// Get fetches a tenant by id.
func (s *Service) Get(ctx context.Context, id string) (*Tenant, error) {
	t, err := s.tenants.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("getting tenant: %w", err)
	}
	return t, nil
}

// DisplayName resolves a tenant's display name.
func (s *Service) DisplayName(ctx context.Context, tenantID string) (string, error) {
	t, err := s.Get(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return t.DisplayName, nil
}

// PublicTenantID returns the id of the reserved public tenant, lazily
// creating the singleton on first access. Creation is guarded by the unique
// display-name index, so a lost race falls back to the winner's document.
func (s *Service) PublicTenantID(ctx context.Context) (string, error) {
	s.publicMu.Lock()
	defer s.publicMu.Unlock()
	if s.publicID != "" {
		return s.publicID, nil
	}

	t, err := s.tenants.GetByDisplayName(ctx, PublicTenantName)
	if err == nil {
		s.publicID = t.ID
		return t.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("looking up public tenant: %w", err)
	}

	created, err := s.createTenant(ctx, PublicTenantName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			existing, lookupErr := s.tenants.GetByDisplayName(ctx, PublicTenantName)
			if lookupErr != nil {
				return "", fmt.Errorf("looking up public tenant after create race: %w", lookupErr)
			}
			s.publicID = existing.ID
			return existing.ID, nil
		}
		return "", err
	}
	s.publicID = created.ID
	return created.ID, nil
}

// AttachProjectRef appends a public project id to the tenant's project refs.
// Idempotent: an existing ref is left alone.
func (s *Service) AttachProjectRef(ctx context.Context, tenantID, publicProjectID string) error {
	t, err := s.Get(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.HasProjectRef(publicProjectID) {
		return nil
	}
	t.ProjectRefs = append(t.ProjectRefs, publicProjectID)
	if err := s.tenants.Save(ctx, t); err != nil {
		return fmt.Errorf("saving tenant project refs: %w", err)
	}
	return nil
}

// AddCollaborator invites the target tenant, or accepts the target's invite
// when the other side moved first. The relationship reference is appended to
// both tenants; a partially applied write heals on the next call because the
// relationship itself is found by pair hash.
func (s *Service) AddCollaborator(ctx context.Context, selfTenantID, targetTenantID, friendlyName string) (relationship.View, error) {
	self, err := s.Get(ctx, selfTenantID)
	if err != nil {
		return relationship.View{}, err
	}
	target, err := s.tenants.Get(ctx, targetTenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return relationship.View{}, ErrUnknownCollaborator
		}
		return relationship.View{}, fmt.Errorf("getting target tenant: %w", err)
	}

	rel, err := s.relationships.FindByPair(ctx, selfTenantID, targetTenantID)
	if err != nil {
		return relationship.View{}, err
	}

	if rel == nil {
		rel, err = s.relationships.Create(ctx, selfTenantID, self.DisplayName, targetTenantID, friendlyName)
		if err != nil {
			return relationship.View{}, err
		}
	} else if err := s.relationships.Accept(ctx, rel, selfTenantID, friendlyName); err != nil {
		return relationship.View{}, err
	}

	if err := s.attachRelationshipRef(ctx, self, rel.ID); err != nil {
		return relationship.View{}, err
	}
	if err := s.attachRelationshipRef(ctx, target, rel.ID); err != nil {
		return relationship.View{}, err
	}

	return rel.ViewAs(selfTenantID)
}

func (s *Service) attachRelationshipRef(ctx context.Context, t *Tenant, relationshipID string) error {
	if t.HasRelationshipRef(relationshipID) {
		return nil
	}
	t.RelationshipRefs = append(t.RelationshipRefs, relationshipID)
	if err := s.tenants.Save(ctx, t); err != nil {
		return fmt.Errorf("saving tenant relationship refs: %w", err)
	}
	return nil
}

// RemoveCollaborator revokes the caller's side of the relationship. It is
// rejected while any project still actively links the two tenants, in either
// direction.
func (s *Service) RemoveCollaborator(ctx context.Context, selfTenantID, targetTenantID string) error {
	rel, err := s.relationships.FindByPair(ctx, selfTenantID, targetTenantID)
	if err != nil {
		return err
	}
	if rel == nil {
		return ErrRelationshipNotFound
	}

	self, err := s.Get(ctx, selfTenantID)
	if err != nil {
		return err
	}

	for _, publicID := range self.ProjectRefs {
		c, err := s.projects.GetCopy(ctx, publicID, selfTenantID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return fmt.Errorf("checking project %s: %w", publicID, err)
		}
		if c.IsOwner(selfTenantID) && c.HasCollaborator(targetTenantID) {
			return fmt.Errorf("%w: project %s", ErrProjectStillShared, publicID)
		}
		if c.OwnerTenantID == targetTenantID {
			// The caller's mirror may be an orphaned snapshot that still
			// lists the caller; only the owner's copy is canonical.
			ownerCopy, err := s.projects.GetCopy(ctx, publicID, targetTenantID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				return fmt.Errorf("checking project %s: %w", publicID, err)
			}
			if ownerCopy.HasCollaborator(selfTenantID) {
				return fmt.Errorf("%w: project %s", ErrProjectStillShared, publicID)
			}
		}
	}

	return s.relationships.Revoke(ctx, rel, selfTenantID)
}

// FindCollaborator returns the caller's view of its relationship with the
// target tenant.
func (s *Service) FindCollaborator(ctx context.Context, selfTenantID, targetTenantID string) (relationship.View, error) {
	rel, err := s.relationships.FindByPair(ctx, selfTenantID, targetTenantID)
	if err != nil {
		return relationship.View{}, err
	}
	if rel == nil {
		return relationship.View{}, ErrRelationshipNotFound
	}
	return rel.ViewAs(selfTenantID)
}

// ListActiveCollaborators returns views of every relationship both sides have
// accepted.
func (s *Service) ListActiveCollaborators(ctx context.Context, selfTenantID string) ([]relationship.View, error) {
	return s.listViews(ctx, selfTenantID, func(rel *relationship.Relationship) bool {
		return rel.Status() == relationship.StatusActive
	})
}

// ListPendingInvites returns invites the caller has sent that the other side
// has not yet accepted.
func (s *Service) ListPendingInvites(ctx context.Context, selfTenantID string) ([]relationship.View, error) {
	return s.listViews(ctx, selfTenantID, func(rel *relationship.Relationship) bool {
		if rel.Status() == relationship.StatusActive {
			return false
		}
		self, ok := rel.Participants[selfTenantID]
		if !ok || !self.Accepted {
			return false
		}
		counterpartID, _ := rel.CounterpartID(selfTenantID)
		return !rel.Participants[counterpartID].Accepted
	})
}

// ListOpenInvites returns invites the caller has received and not yet
// accepted.
func (s *Service) ListOpenInvites(ctx context.Context, selfTenantID string) ([]relationship.View, error) {
	return s.listViews(ctx, selfTenantID, func(rel *relationship.Relationship) bool {
		self, ok := rel.Participants[selfTenantID]
		if !ok || self.Accepted {
			return false
		}
		counterpartID, _ := rel.CounterpartID(selfTenantID)
		return rel.Participants[counterpartID].Accepted
	})
}

func (s *Service) listViews(ctx context.Context, selfTenantID string, keep func(*relationship.Relationship) bool) ([]relationship.View, error) {
	self, err := s.Get(ctx, selfTenantID)
	if err != nil {
		return nil, err
	}

	views := make([]relationship.View, 0, len(self.RelationshipRefs))
	for _, relID := range self.RelationshipRefs {
		rel, err := s.relationships.Get(ctx, relID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Referenced relationship is gone: registry corruption.
				// Surface it rather than hiding the inconsistency.
				return nil, fmt.Errorf("relationship %s referenced by tenant %s is missing: %w", relID, selfTenantID, err)
			}
			return nil, err
		}
		if !keep(rel) {
			continue
		}
		view, err := rel.ViewAs(selfTenantID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CheckCollaboratorsActive verifies every listed tenant has an active
// relationship with the caller. Fails naming the first tenant that doesn't.
func (s *Service) CheckCollaboratorsActive(ctx context.Context, selfTenantID string, collaboratorIDs []string) error {
	for _, id := range collaboratorIDs {
		rel, err := s.relationships.FindByPair(ctx, selfTenantID, id)
		if err != nil {
			return err
		}
		if rel == nil || rel.Status() != relationship.StatusActive {
			return fmt.Errorf("%w: %s", ErrCollaboratorNotActive, id)
		}
	}
	return nil
}
