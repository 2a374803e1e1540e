package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// tokenClaims carries the authenticated identity inside a signed token.
type tokenClaims struct {
	TenancyID string `json:"tenancy_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

func signToken(signingKey []byte, ttl time.Duration, u *User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		TenancyID: u.TenantID,
		UserID:    u.ID,
		Email:     u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func parseToken(signingKey []byte, raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	if claims.TenancyID == "" {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
