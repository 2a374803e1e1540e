package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/repository"
)

// RelationshipRepository implements relationship.Repository for SQLite
type RelationshipRepository struct {
	db *DB
}

// NewRelationshipRepository creates a new RelationshipRepository
func NewRelationshipRepository(db *DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// Create inserts a new relationship. The unique index on pair_hash rejects a
// second document for the same tenant pair.
func (r *RelationshipRepository) Create(ctx context.Context, rel *relationship.Relationship) error {
	participants, err := marshalJSON(rel.Participants)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO relationships (id, pair_hash, participants)
		VALUES (?, ?, ?)
	`, rel.ID, rel.Hash, participants)
	if err := mapWriteErr(err); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

// Get retrieves a relationship by id
func (r *RelationshipRepository) Get(ctx context.Context, id string) (*relationship.Relationship, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, pair_hash, participants FROM relationships WHERE id = ?
	`, id))
}

// GetByHash retrieves a relationship by its order-independent pair hash
func (r *RelationshipRepository) GetByHash(ctx context.Context, hash string) (*relationship.Relationship, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, pair_hash, participants FROM relationships WHERE pair_hash = ?
	`, hash))
}

func (r *RelationshipRepository) scanOne(row *sql.Row) (*relationship.Relationship, error) {
	var rel relationship.Relationship
	var participants string

	err := row.Scan(&rel.ID, &rel.Hash, &participants)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}

	if err := unmarshalJSON(participants, &rel.Participants); err != nil {
		return nil, err
	}
	return &rel, nil
}

// Save rewrites the relationship document
func (r *RelationshipRepository) Save(ctx context.Context, rel *relationship.Relationship) error {
	participants, err := marshalJSON(rel.Participants)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE relationships SET participants = ? WHERE id = ?
	`, participants, rel.ID)
	if err != nil {
		return fmt.Errorf("failed to save relationship: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
