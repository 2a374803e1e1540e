package mocks

import (
	"context"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/domain/tenancy"
	"github.com/stretchr/testify/mock"
)

// RelationshipRepository is a mock for relationship.Repository.
type RelationshipRepository struct {
	mock.Mock
}

func (m *RelationshipRepository) Create(ctx context.Context, rel *relationship.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *RelationshipRepository) Get(ctx context.Context, id string) (*relationship.Relationship, error) {
	args := m.Called(ctx, id)
	if rel, ok := args.Get(0).(*relationship.Relationship); ok {
		return rel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) GetByHash(ctx context.Context, hash string) (*relationship.Relationship, error) {
	args := m.Called(ctx, hash)
	if rel, ok := args.Get(0).(*relationship.Relationship); ok {
		return rel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) Save(ctx context.Context, rel *relationship.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

// TenantRepository is a mock for tenancy.Repository.
type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) Create(ctx context.Context, t *tenancy.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TenantRepository) Get(ctx context.Context, id string) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*tenancy.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TenantRepository) GetByDisplayName(ctx context.Context, name string) (*tenancy.Tenant, error) {
	args := m.Called(ctx, name)
	if t, ok := args.Get(0).(*tenancy.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Put(ctx context.Context, copy *project.Copy) error {
	args := m.Called(ctx, copy)
	return args.Error(0)
}

func (m *ProjectRepository) GetCopy(ctx context.Context, publicID, holderTenantID string) (*project.Copy, error) {
	args := m.Called(ctx, publicID, holderTenantID)
	if c, ok := args.Get(0).(*project.Copy); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Save(ctx context.Context, copy *project.Copy) error {
	args := m.Called(ctx, copy)
	return args.Error(0)
}

func (m *ProjectRepository) ListByHolder(ctx context.Context, holderTenantID string) ([]project.Copy, error) {
	args := m.Called(ctx, holderTenantID)
	if list, ok := args.Get(0).([]project.Copy); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventRepository is a mock for event.Repository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, ev *event.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EventRepository) Get(ctx context.Context, id string) (*event.Event, error) {
	args := m.Called(ctx, id)
	if ev, ok := args.Get(0).(*event.Event); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) GetMany(ctx context.Context, ids []string) ([]event.Event, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for auth.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *auth.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*auth.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ApplicationRepository is a mock for auth.ApplicationRepository.
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *auth.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByAppID(ctx context.Context, appID string) (*auth.Application, error) {
	args := m.Called(ctx, appID)
	if app, ok := args.Get(0).(*auth.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) Save(ctx context.Context, app *auth.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
