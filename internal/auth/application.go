package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/candourhq/candour/internal/repository"
	"github.com/google/uuid"
)

// Application is a machine credential bound to a tenant. Tokens issued for an
// application carry the same tenant identity as a user login, so the rest of
// the API cannot tell them apart. The secret is stored only as a hash; the
// plaintext leaves the server exactly once per issue.
type Application struct {
	ID         string    `json:"id"`
	AppID      string    `json:"app_id"`
	SecretHash string    `json:"-"`
	TenantID   string    `json:"tenant_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// AppCredentials is the one-time response carrying the plaintext secret.
type AppCredentials struct {
	AppID  string `json:"appID"`
	Secret string `json:"secret"`
}

// ApplicationRepository provides persistence for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByAppID(ctx context.Context, appID string) (*Application, error)
	Save(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

// CreateApplication registers a new machine credential for the tenant and
// returns its appID/secret pair. The secret is not recoverable later; callers
// that lose it roll a new one.
func (s *Service) CreateApplication(ctx context.Context, tenantID string) (*AppCredentials, error) {
	secret := uuid.NewString()
	hash, err := hashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("hashing application secret: %w", err)
	}

	app := &Application{
		ID:         uuid.NewString(),
		AppID:      uuid.NewString(),
		SecretHash: hash,
		TenantID:   tenantID,
		CreatedAt:  time.Now(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	return &AppCredentials{AppID: app.AppID, Secret: secret}, nil
}

// RollApplicationSecret replaces the application's secret and returns the new
// pair. Only the owning tenant may roll.
func (s *Service) RollApplicationSecret(ctx context.Context, tenantID, appID string) (*AppCredentials, error) {
	app, err := s.ownedApplication(ctx, tenantID, appID)
	if err != nil {
		return nil, err
	}

	secret := uuid.NewString()
	hash, err := hashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("hashing application secret: %w", err)
	}
	app.SecretHash = hash
	if err := s.apps.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("saving application: %w", err)
	}

	return &AppCredentials{AppID: app.AppID, Secret: secret}, nil
}

// DeleteApplication removes the credential. Tokens already issued for it stay
// valid until they expire.
func (s *Service) DeleteApplication(ctx context.Context, tenantID, appID string) error {
	app, err := s.ownedApplication(ctx, tenantID, appID)
	if err != nil {
		return err
	}
	if err := s.apps.Delete(ctx, app.ID); err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}
	return nil
}

func (s *Service) ownedApplication(ctx context.Context, tenantID, appID string) (*Application, error) {
	app, err := s.apps.GetByAppID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("looking up application: %w", err)
	}
	if app.TenantID != tenantID {
		return nil, ErrNotApplicationOwner
	}
	return app, nil
}

func (s *Service) loginApplication(ctx context.Context, appID, secret string) (*Credentials, error) {
	app, err := s.apps.GetByAppID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up application: %w", err)
	}

	ok, err := verifyPassword(secret, app.SecretHash)
	if err != nil {
		return nil, fmt.Errorf("verifying application secret: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := signToken(s.signingKey, s.tokenTTL, &User{ID: app.ID, Email: app.AppID, TenantID: app.TenantID})
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: token, TenantID: app.TenantID, Email: app.AppID}, nil
}
