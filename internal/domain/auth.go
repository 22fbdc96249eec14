package domain

import (
	"context"
	"time"
)

type Token string

// TokenClaims are the session claims carried by a storefront token
type TokenClaims struct {
	JTI       string
	UserID    UserID
	UserName  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenManager interface {
	Issue(ctx context.Context, userID UserID, userName string) (Token, TokenClaims, error)
	Parse(ctx context.Context, raw Token) (TokenClaims, error)
}

type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Session is what the auth middleware attaches to a request
type Session struct {
	UserID    UserID
	UserName  string
	JTI       string
	ExpiresAt time.Time
}

// LoginResult is handed back on a successful login
type LoginResult struct {
	Token     Token     `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
