package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const copyColumns = `internal_id, public_id, owner_tenant_id, holder_tenant_id,
	name, description, status, started_date, custom_meta, events, collaborators, diffs, is_public`

// Put inserts the copy, replacing any previous copy held by the same tenant
// for the same public project id. Replacement carries the re-added
// collaborator semantics: the fresh copy starts without the old event
// history.
func (r *ProjectRepository) Put(ctx context.Context, c *project.Copy) error {
	meta, events, collaborators, diffs, err := encodeCopyFields(c)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO project_copies (`+copyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(public_id, holder_tenant_id) DO UPDATE SET
			internal_id = excluded.internal_id,
			owner_tenant_id = excluded.owner_tenant_id,
			name = excluded.name,
			description = excluded.description,
			status = excluded.status,
			started_date = excluded.started_date,
			custom_meta = excluded.custom_meta,
			events = excluded.events,
			collaborators = excluded.collaborators,
			diffs = excluded.diffs,
			is_public = excluded.is_public
	`, c.InternalID, c.PublicID, c.OwnerTenantID, c.HolderTenantID,
		c.Name, c.Description, string(c.Status), c.StartedDate,
		meta, events, collaborators, diffs, c.Public)
	if err != nil {
		return fmt.Errorf("failed to put project copy: %w", err)
	}
	return nil
}

// GetCopy retrieves the copy held by one tenant for one logical project
func (r *ProjectRepository) GetCopy(ctx context.Context, publicID, holderTenantID string) (*project.Copy, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+copyColumns+`
		FROM project_copies
		WHERE public_id = ? AND holder_tenant_id = ?
	`, publicID, holderTenantID)

	c, err := scanCopy(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project copy: %w", err)
	}
	return c, nil
}

// Save rewrites an existing copy document by internal id
func (r *ProjectRepository) Save(ctx context.Context, c *project.Copy) error {
	meta, events, collaborators, diffs, err := encodeCopyFields(c)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE project_copies
		SET name = ?, description = ?, status = ?, custom_meta = ?,
			events = ?, collaborators = ?, diffs = ?, is_public = ?
		WHERE internal_id = ?
	`, c.Name, c.Description, string(c.Status), meta,
		events, collaborators, diffs, c.Public, c.InternalID)
	if err != nil {
		return fmt.Errorf("failed to save project copy: %w", err)
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

// ListByHolder returns every copy held by a tenant, oldest project first
func (r *ProjectRepository) ListByHolder(ctx context.Context, holderTenantID string) ([]project.Copy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+copyColumns+`
		FROM project_copies
		WHERE holder_tenant_id = ?
		ORDER BY started_date ASC
	`, holderTenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project copies: %w", err)
	}
	defer rows.Close()

	var copies []project.Copy
	for rows.Next() {
		c, err := scanCopy(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project copy: %w", err)
		}
		copies = append(copies, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project copy rows: %w", err)
	}
	return copies, nil
}

func encodeCopyFields(c *project.Copy) (meta, events, collaborators, diffs string, err error) {
	if meta, err = marshalJSON(c.CustomMetaData); err != nil {
		return
	}
	if events, err = marshalJSON(c.Events); err != nil {
		return
	}
	if collaborators, err = marshalJSON(c.Collaborators); err != nil {
		return
	}
	diffs, err = marshalJSON(c.Diffs)
	return
}

func scanCopy(scan func(...any) error) (*project.Copy, error) {
	var c project.Copy
	var status, meta, events, collaborators, diffs string

	err := scan(&c.InternalID, &c.PublicID, &c.OwnerTenantID, &c.HolderTenantID,
		&c.Name, &c.Description, &status, &c.StartedDate,
		&meta, &events, &collaborators, &diffs, &c.Public)
	if err != nil {
		return nil, err
	}

	c.Status = project.Status(status)
	if err := unmarshalJSON(meta, &c.CustomMetaData); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(events, &c.Events); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(collaborators, &c.Collaborators); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(diffs, &c.Diffs); err != nil {
		return nil, err
	}
	return &c, nil
}
