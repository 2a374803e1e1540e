package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/repository"
)

// ApplicationRepository implements auth.ApplicationRepository for SQLite
type ApplicationRepository struct {
	db *DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application credential.
func (r *ApplicationRepository) Create(ctx context.Context, app *auth.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (id, app_id, secret_hash, tenant_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, app.ID, app.AppID, app.SecretHash, app.TenantID, app.CreatedAt)
	if err := mapWriteErr(err); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByAppID retrieves an application by its public app id
func (r *ApplicationRepository) GetByAppID(ctx context.Context, appID string) (*auth.Application, error) {
	var app auth.Application
	err := r.db.QueryRowContext(ctx, `
		SELECT id, app_id, secret_hash, tenant_id, created_at
		FROM applications
		WHERE app_id = ?
	`, appID).Scan(&app.ID, &app.AppID, &app.SecretHash, &app.TenantID, &app.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// Save rewrites the application's secret hash.
func (r *ApplicationRepository) Save(ctx context.Context, app *auth.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET secret_hash = ? WHERE id = ?
	`, app.SecretHash, app.ID)
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the application by internal id.
func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
