package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for missing or expired sessions and reset tokens.
var ErrNotFound = errors.New("not found")

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// SessionStore maps a hashed bearer token to the signed-in user.
type SessionStore interface {
	CreateSession(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// GetSession returns the user id for tokenHash.
	// Returns ErrNotFound if the session does not exist or has expired.
	GetSession(ctx context.Context, tokenHash string) (string, error)

	DeleteSession(ctx context.Context, tokenHash string) error

	// DeleteUserSessions signs userID out everywhere.
	DeleteUserSessions(ctx context.Context, userID string) error
}

// ResetTokenStore holds single-use password reset tokens.
type ResetTokenStore interface {
	SetResetToken(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// ConsumeResetToken atomically retrieves and removes a reset token.
	// Returns ErrNotFound if the token does not exist or has expired.
	ConsumeResetToken(ctx context.Context, tokenHash string) (string, error)
}

type Backend interface {
	RateLimiter
	SessionStore
	ResetTokenStore

	Close() error

	Ping(ctx context.Context) error
}

type entry struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
