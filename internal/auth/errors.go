package auth

import "errors"

var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a failed login or an invalid token.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword indicates the password fails the minimum policy.
	ErrWeakPassword = errors.New("password does not meet complexity requirements")
	// ErrInvalidInput indicates malformed signup or login input.
	ErrInvalidInput = errors.New("invalid authentication input")
	// ErrApplicationNotFound indicates no application matches the app id.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrNotApplicationOwner indicates the caller's tenant does not own the
	// application.
	ErrNotApplicationOwner = errors.New("application belongs to another tenant")
)
