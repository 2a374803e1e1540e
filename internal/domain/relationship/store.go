package relationship

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/candourhq/candour/internal/repository"
	"github.com/google/uuid"
)

// Repository provides persistence for relationships.
type Repository interface {
	Create(ctx context.Context, rel *Relationship) error
	Get(ctx context.Context, id string) (*Relationship, error)
	GetByHash(ctx context.Context, hash string) (*Relationship, error)
	Save(ctx context.Context, rel *Relationship) error
}

// Store manages pairwise collaboration relationships between tenants.
type Store struct {
	repo   Repository
	logger *slog.Logger
}

// NewStore creates a new relationship store.
func NewStore(repo Repository, logger *slog.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

// FindByPair looks up the relationship between two tenants regardless of
// argument order. Returns (nil, nil) when no relationship exists.
func (s *Store) FindByPair(ctx context.Context, tenantA, tenantB string) (*Relationship, error) {
	rel, err := s.repo.GetByHash(ctx, PairHash(tenantA, tenantB))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding relationship by pair: %w", err)
	}
	return rel, nil
}

// Create persists a new relationship. The inviter's entry starts accepted
// with the friendly name it chose for the invitee; the invitee's entry starts
// unaccepted with a placeholder name pointing back at the inviter. Callers
// are expected to check FindByPair first; a pair collision surfaces as
// ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, inviterID, inviterDisplayName, inviteeID, friendlyName string) (*Relationship, error) {
	now := time.Now()
	rel := &Relationship{
		ID:   uuid.NewString(),
		Hash: PairHash(inviterID, inviteeID),
		Participants: map[string]ParticipantInfo{
			inviterID: {
				TenantID:       inviterID,
				FriendlyName:   friendlyName,
				Accepted:       true,
				SharedProjects: []string{},
				UpdatedAt:      now,
			},
			inviteeID: {
				TenantID:       inviteeID,
				FriendlyName:   fmt.Sprintf("Pending invite from %s", inviterDisplayName),
				Accepted:       false,
				SharedProjects: []string{},
				UpdatedAt:      now,
			},
		},
	}

	if err := s.repo.Create(ctx, rel); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("creating relationship: %w", err)
	}
	return rel, nil
}

// Accept marks the accepter's side of the relationship as accepted.
func (s *Store) Accept(ctx context.Context, rel *Relationship, accepterID, friendlyName string) error {
	rel.Accept(accepterID, friendlyName, time.Now())
	if err := s.repo.Save(ctx, rel); err != nil {
		return fmt.Errorf("saving accepted relationship: %w", err)
	}
	return nil
}

// Revoke marks the tenant's own side of the relationship as not accepted.
// The relationship document is kept so the pair can re-invite later.
func (s *Store) Revoke(ctx context.Context, rel *Relationship, tenantID string) error {
	rel.Revoke(tenantID, time.Now())
	if err := s.repo.Save(ctx, rel); err != nil {
		return fmt.Errorf("saving revoked relationship: %w", err)
	}
	return nil
}

// Get fetches a relationship by id.
func (s *Store) Get(ctx context.Context, id string) (*Relationship, error) {
	rel, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting relationship %s: %w", id, err)
	}
	return rel, nil
}
