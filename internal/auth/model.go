package auth

import "time"

// User is a login identity bound to exactly one tenant.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TenantID     string    `json:"tenant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the result of a successful signup or login.
type Credentials struct {
	Token    string `json:"token"`
	TenantID string `json:"tenantID"`
	Email    string `json:"email"`
}
