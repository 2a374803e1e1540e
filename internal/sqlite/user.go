package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/repository"
)

// UserRepository implements auth.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The unique index on email rejects duplicates.
func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, tenant_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.TenantID, u.CreatedAt)
	if err := mapWriteErr(err); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, tenant_id, created_at
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.TenantID, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
