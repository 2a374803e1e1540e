package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/candourhq/candour/internal/domain/tenancy"
	"github.com/candourhq/candour/internal/repository"
	"github.com/google/uuid"
)

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TenantCreator registers the tenant a new signup belongs to.
type TenantCreator interface {
	Create(ctx context.Context, displayName string) (*tenancy.Tenant, error)
}

// Service handles signup, login, application credentials, and bearer-token
// resolution.
type Service struct {
	users      Repository
	apps       ApplicationRepository
	tenants    TenantCreator
	signingKey []byte
	tokenTTL   time.Duration
	logger     *slog.Logger
}

// NewService creates a new auth service.
func NewService(users Repository, apps ApplicationRepository, tenants TenantCreator, signingKey []byte, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{users: users, apps: apps, tenants: tenants, signingKey: signingKey, tokenTTL: tokenTTL, logger: logger}
}

const minPasswordLength = 8

// Signup registers a new tenant and its first user, returning a bearer
// token. The reserved public tenant name is rejected by the tenancy
// registry.
func (s *Service) Signup(ctx context.Context, email, password, companyName string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || strings.TrimSpace(companyName) == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	tenant, err := s.tenants.Create(ctx, companyName)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		TenantID:     tenant.ID,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issue(u)
}

// Login verifies the password and returns a fresh bearer token. The email
// slot doubles as an application id: when no user matches, the credentials
// are tried as an appID/secret pair.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.loginApplication(ctx, email, password)
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := verifyPassword(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *Service) issue(u *User) (*Credentials, error) {
	token, err := signToken(s.signingKey, s.tokenTTL, u)
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: token, TenantID: u.TenantID, Email: u.Email}, nil
}

// ResolveTenant validates a bearer token and returns the tenant id it was
// issued for. Implements the transport layer's TenantResolver.
func (s *Service) ResolveTenant(_ context.Context, token string) (string, error) {
	claims, err := parseToken(s.signingKey, token)
	if err != nil {
		return "", err
	}
	return claims.TenancyID, nil
}
