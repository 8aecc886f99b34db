package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated user and the bearer token issued for them.
type Session struct {
	Token string  `json:"access_token"`
	User  Profile `json:"user"`
}

func (s Session) Empty() bool {
	return s.Token == ""
}

// TokenClaims are the claims the backend puts in its access tokens.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Claims decodes the access token without verifying its signature. The client
// never holds the signing key, so the result is informational only.
func (s Session) Claims() (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens that cannot be decoded or have no exp are not considered expired.
func (s Session) Expired(now time.Time) bool {
	claims, err := s.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(now)
}
