package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/candourhq/candour/internal/repository"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Document-valued fields (reference lists,
// metadata maps, diff history, relationship participants) are stored as JSON
// columns; each Save rewrites the whole row, which matches the
// single-document atomic update model the engine assumes.
func (db *DB) RunMigrations() error {
	migration := `
-- Tenants: per-tenant registry of project and relationship references
CREATE TABLE tenants (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL UNIQUE,
    project_refs TEXT NOT NULL DEFAULT '[]',
    relationship_refs TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL
);

-- Relationships: one document per tenant pair, keyed by order-independent hash
CREATE TABLE relationships (
    id TEXT PRIMARY KEY,
    pair_hash TEXT NOT NULL UNIQUE,
    participants TEXT NOT NULL
);

-- Project copies: one materialized view per (logical project, holder tenant)
CREATE TABLE project_copies (
    internal_id TEXT PRIMARY KEY,
    public_id TEXT NOT NULL,
    owner_tenant_id TEXT NOT NULL,
    holder_tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('ACTIVE', 'INACTIVE')),
    started_date TIMESTAMP NOT NULL,
    custom_meta TEXT NOT NULL DEFAULT '{}',
    events TEXT NOT NULL DEFAULT '[]',
    collaborators TEXT NOT NULL DEFAULT '[]',
    diffs TEXT NOT NULL DEFAULT '[]',
    is_public INTEGER NOT NULL DEFAULT 0,
    UNIQUE(public_id, holder_tenant_id)
);
CREATE INDEX idx_copies_holder ON project_copies(holder_tenant_id);
CREATE INDEX idx_copies_public ON project_copies(public_id);

-- Events: immutable, append-only
CREATE TABLE events (
    id TEXT PRIMARY KEY,
    public_project_id TEXT NOT NULL,
    event_date TIMESTAMP NOT NULL,
    event_name TEXT NOT NULL,
    event_type TEXT NOT NULL,
    custom_meta TEXT NOT NULL DEFAULT '{}',
    attachments TEXT NOT NULL DEFAULT '[]',
    creator_tenant_id TEXT NOT NULL
);
CREATE INDEX idx_events_project ON events(public_project_id);

-- Users: login identities, one tenant each
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_users_tenant ON users(tenant_id);

-- Applications: machine credentials, token-equivalent to a user login
CREATE TABLE applications (
    id TEXT PRIMARY KEY,
    app_id TEXT NOT NULL UNIQUE,
    secret_hash TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_applications_tenant ON applications(tenant_id);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// mapWriteErr translates driver errors into repository sentinels.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrDuplicate
	}
	return err
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding document field: %w", err)
	}
	return string(data), nil
}

func unmarshalJSON(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("decoding document field: %w", err)
	}
	return nil
}
