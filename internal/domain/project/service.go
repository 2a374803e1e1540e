package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/candourhq/candour/internal/metrics"
	"github.com/candourhq/candour/internal/repository"
	"github.com/google/uuid"
)

// Service is the project replication engine. It creates and maintains one
// copy document per tenant that can see a project and fans diffs out to all
// copies in the current collaborator set.
type Service struct {
	copies    Repository
	registrar TenantRegistrar
	gate      CollaboratorGate
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new project service.
func NewService(copies Repository, registrar TenantRegistrar, gate CollaboratorGate, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{copies: copies, registrar: registrar, gate: gate, logger: logger, metrics: m}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name           string
	Description    string
	CustomMetaData map[string]string
	Collaborators  []string
	Public         bool
}

// Create allocates a new logical project, builds the owner's copy, and
// materializes one copy per requested collaborator. The owner is always part
// of its own collaborator list.
func (s *Service) Create(ctx context.Context, ownerTenantID string, req CreateRequest) (*Copy, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	publicTenantID, err := s.registrar.PublicTenantID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving public tenant: %w", err)
	}

	collaborators := dedupe(append([]string{ownerTenantID}, req.Collaborators...))
	if contains(collaborators, publicTenantID) && !req.Public {
		return nil, ErrPublicTenantMisuse
	}
	if req.Public && !contains(collaborators, publicTenantID) {
		collaborators = append(collaborators, publicTenantID)
	}

	if err := s.gate.CheckCollaboratorsActive(ctx, ownerTenantID, without(collaborators, ownerTenantID, publicTenantID)); err != nil {
		return nil, err
	}

	meta := req.CustomMetaData
	if meta == nil {
		meta = map[string]string{}
	}

	owner := &Copy{
		InternalID:     uuid.NewString(),
		PublicID:       uuid.NewString(),
		OwnerTenantID:  ownerTenantID,
		HolderTenantID: ownerTenantID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         StatusActive,
		StartedDate:    time.Now(),
		CustomMetaData: meta,
		Events:         []string{},
		Collaborators:  collaborators,
		Diffs:          []DiffRecord{},
		Public:         req.Public,
	}

	if err := s.copies.Put(ctx, owner); err != nil {
		return nil, fmt.Errorf("creating owner copy: %w", err)
	}
	if err := s.registrar.AttachProjectRef(ctx, ownerTenantID, owner.PublicID); err != nil {
		return nil, fmt.Errorf("attaching project ref to owner: %w", err)
	}

	for _, collaboratorID := range collaborators {
		if collaboratorID == ownerTenantID {
			continue
		}
		if _, err := s.createCopyFor(ctx, owner, collaboratorID); err != nil {
			return nil, err
		}
	}

	s.metrics.IncProjectsCreated()
	return owner, nil
}

// createCopyFor clones the owner copy's current display state into a fresh
// copy held by the collaborator. The event and diff lists start empty: a
// collaborator never sees history from before it joined. Re-adding a
// previously removed collaborator replaces its orphaned copy.
func (s *Service) createCopyFor(ctx context.Context, ownerCopy *Copy, collaboratorTenantID string) (*Copy, error) {
	c := &Copy{
		InternalID:     uuid.NewString(),
		PublicID:       ownerCopy.PublicID,
		OwnerTenantID:  ownerCopy.OwnerTenantID,
		HolderTenantID: collaboratorTenantID,
		Name:           ownerCopy.Name,
		Description:    ownerCopy.Description,
		Status:         ownerCopy.Status,
		StartedDate:    ownerCopy.StartedDate,
		CustomMetaData: cloneMeta(ownerCopy.CustomMetaData),
		Events:         []string{},
		Collaborators:  append([]string(nil), ownerCopy.Collaborators...),
		Diffs:          []DiffRecord{},
		Public:         ownerCopy.Public,
	}

	if err := s.copies.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("creating copy for collaborator %s: %w", collaboratorTenantID, err)
	}
	if err := s.registrar.AttachProjectRef(ctx, collaboratorTenantID, c.PublicID); err != nil {
		return nil, fmt.Errorf("attaching project ref to collaborator %s: %w", collaboratorTenantID, err)
	}
	return c, nil
}

// Get returns the viewer's own copy, the only read path. Removed
// collaborators still resolve their orphaned copy here.
func (s *Service) Get(ctx context.Context, viewerTenantID, publicID string) (*Copy, error) {
	c, err := s.copies.GetCopy(ctx, publicID, viewerTenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project copy: %w", err)
	}
	return c, nil
}

// ListForTenant returns every copy the tenant holds.
func (s *Service) ListForTenant(ctx context.Context, tenantID string) ([]Copy, error) {
	copies, err := s.copies.ListByHolder(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing project copies: %w", err)
	}
	return copies, nil
}

// ApplyDiff computes and applies an owner-initiated change set. Collaborator
// additions create fresh copies; the updated display fields are then pushed
// to every copy in the new collaborator set. Copies of removed collaborators
// are left untouched, preserving their last-synced snapshot.
func (s *Service) ApplyDiff(ctx context.Context, actorTenantID, publicID string, req DiffRequest) (*DiffRecord, error) {
	owner, err := s.Get(ctx, actorTenantID, publicID)
	if err != nil {
		return nil, err
	}
	if !owner.IsOwner(actorTenantID) {
		return nil, ErrNotOwner
	}
	// An inactive project only accepts the patch that reactivates it.
	if owner.Status != StatusActive && (req.Status == nil || *req.Status != StatusActive) {
		return nil, ErrProjectInactive
	}

	var newSet []string
	if req.Collaborators != nil {
		newSet = dedupe(append([]string{owner.OwnerTenantID}, req.Collaborators...))

		publicTenantID, err := s.registrar.PublicTenantID(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving public tenant: %w", err)
		}
		willBePublic := owner.Public
		if req.Public != nil {
			willBePublic = *req.Public
		}
		if contains(newSet, publicTenantID) && !willBePublic {
			return nil, ErrPublicTenantMisuse
		}

		var added []string
		for _, id := range newSet {
			if !owner.HasCollaborator(id) && id != publicTenantID {
				added = append(added, id)
			}
		}
		if err := s.gate.CheckCollaboratorsActive(ctx, owner.OwnerTenantID, added); err != nil {
			return nil, err
		}
		for _, id := range newSet {
			if owner.HasCollaborator(id) || id == owner.OwnerTenantID {
				continue
			}
			if _, err := s.createCopyFor(ctx, owner, id); err != nil {
				return nil, err
			}
		}
	}

	diff := buildDiff(owner, req, newSet)
	applyDiff(owner, req, newSet, diff)

	if err := s.copies.Save(ctx, owner); err != nil {
		return nil, fmt.Errorf("saving owner copy: %w", err)
	}

	s.fanOutFields(ctx, owner)
	return &diff, nil
}

// fanOutFields pushes the owner copy's mutable fields to every collaborator
// copy in the current set. Individual copy failures are logged and counted
// but never fail the initiating write; the next diff application repairs
// them.
func (s *Service) fanOutFields(ctx context.Context, owner *Copy) {
	for _, tenantID := range owner.Collaborators {
		if tenantID == owner.HolderTenantID {
			continue
		}
		err := s.syncCopy(ctx, owner, tenantID)
		s.metrics.ObserveFanout("diff", err)
		if err != nil && s.logger != nil {
			s.logger.Warn("diff fan-out failed", "project", owner.PublicID, "tenant", tenantID, "error", err)
		}
	}
}

func (s *Service) syncCopy(ctx context.Context, owner *Copy, tenantID string) error {
	c, err := s.copies.GetCopy(ctx, owner.PublicID, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: project %s tenant %s", ErrCopyMissing, owner.PublicID, tenantID)
		}
		return err
	}
	c.Name = owner.Name
	c.Description = owner.Description
	c.Status = owner.Status
	c.CustomMetaData = cloneMeta(owner.CustomMetaData)
	c.Collaborators = append([]string(nil), owner.Collaborators...)
	c.Public = owner.Public
	return s.copies.Save(ctx, c)
}

// ListCollaborators resolves display names for every collaborator on the
// copy, excluding the owner.
func (s *Service) ListCollaborators(ctx context.Context, viewerTenantID, publicID string) ([]CollaboratorInfo, error) {
	c, err := s.Get(ctx, viewerTenantID, publicID)
	if err != nil {
		return nil, err
	}

	infos := make([]CollaboratorInfo, 0, len(c.Collaborators))
	for _, id := range c.Collaborators {
		if id == c.OwnerTenantID {
			continue
		}
		name, err := s.registrar.DisplayName(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolving collaborator %s: %w", id, err)
		}
		infos = append(infos, CollaboratorInfo{TenantID: id, DisplayName: name})
	}
	return infos, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, excluded ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !contains(excluded, id) {
			out = append(out, id)
		}
	}
	return out
}

func cloneMeta(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
