package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/candourhq/candour/internal/domain/tenancy"
	"github.com/candourhq/candour/internal/repository"
)

// TenantRepository implements tenancy.Repository for SQLite
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenancy.Tenant) error {
	projectRefs, err := marshalJSON(t.ProjectRefs)
	if err != nil {
		return err
	}
	relationshipRefs, err := marshalJSON(t.RelationshipRefs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, display_name, project_refs, relationship_refs, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.DisplayName, projectRefs, relationshipRefs, t.CreatedAt)
	if err := mapWriteErr(err); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// Get retrieves a tenant by id
func (r *TenantRepository) Get(ctx context.Context, id string) (*tenancy.Tenant, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, display_name, project_refs, relationship_refs, created_at
		FROM tenants
		WHERE id = ?
	`, id))
}

// GetByDisplayName retrieves a tenant by its unique display name
func (r *TenantRepository) GetByDisplayName(ctx context.Context, name string) (*tenancy.Tenant, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, display_name, project_refs, relationship_refs, created_at
		FROM tenants
		WHERE display_name = ?
	`, name))
}

func (r *TenantRepository) scanOne(row *sql.Row) (*tenancy.Tenant, error) {
	var t tenancy.Tenant
	var projectRefs, relationshipRefs string

	err := row.Scan(&t.ID, &t.DisplayName, &projectRefs, &relationshipRefs, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if err := unmarshalJSON(projectRefs, &t.ProjectRefs); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(relationshipRefs, &t.RelationshipRefs); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save rewrites the tenant document
func (r *TenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	projectRefs, err := marshalJSON(t.ProjectRefs)
	if err != nil {
		return err
	}
	relationshipRefs, err := marshalJSON(t.RelationshipRefs)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE tenants
		SET display_name = ?, project_refs = ?, relationship_refs = ?
		WHERE id = ?
	`, t.DisplayName, projectRefs, relationshipRefs, t.ID)
	if err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
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
