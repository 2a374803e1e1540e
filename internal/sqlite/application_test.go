package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/repository"
	"github.com/stretchr/testify/require"
)

func testApplication(id, appID string) *auth.Application {
	return &auth.Application{
		ID:         id,
		AppID:      appID,
		SecretHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		TenantID:   "tenant1",
		CreatedAt:  time.Now().UTC(),
	}
}

func TestApplicationRepository_CreateAndGetByAppID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testApplication("a1", "app1")))

	retrieved, err := repo.GetByAppID(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, "a1", retrieved.ID)
	require.Equal(t, "tenant1", retrieved.TenantID)
	require.NotEmpty(t, retrieved.SecretHash)

	_, err = repo.GetByAppID(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_DuplicateAppID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testApplication("a1", "app1")))

	err := repo.Create(ctx, testApplication("a2", "app1"))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestApplicationRepository_SaveRewritesSecret(t *testing.T) {
	db := NewTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	app := testApplication("a1", "app1")
	require.NoError(t, repo.Create(ctx, app))

	app.SecretHash = "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$cm9sbGVk"
	require.NoError(t, repo.Save(ctx, app))

	retrieved, err := repo.GetByAppID(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, app.SecretHash, retrieved.SecretHash)

	err = repo.Save(ctx, testApplication("ghost", "app2"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testApplication("a1", "app1")))
	require.NoError(t, repo.Delete(ctx, "a1"))

	_, err := repo.GetByAppID(ctx, "app1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "a1"), repository.ErrNotFound)
}
