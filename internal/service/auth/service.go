package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// bcrypt only reads the first 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

type SignUpRequest struct {
	Email    string
	Password string
	FullName string
	Role     analytics.Role
}

type SignInRequest struct {
	Email    string
	Password string
}

type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type Service interface {
	// SignUp creates the account and its profile and signs the user in.
	// Returns ErrEmailTaken if the email is already registered.
	SignUp(ctx context.Context, req SignUpRequest) (*Session, error)

	// SignIn returns ErrInvalidCredentials for any email/password mismatch.
	SignIn(ctx context.Context, req SignInRequest) (*Session, error)

	SignOut(ctx context.Context, token string) error

	// Authenticate resolves a bearer token to its user id.
	// Returns ErrInvalidSession if the token is unknown or expired.
	Authenticate(ctx context.Context, token string) (string, error)

	// RequestPasswordReset mails a single-use reset link. Unknown emails
	// succeed silently.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset sets a new password and revokes the token.
	// Returns ErrInvalidResetToken if the token is unknown, used or expired.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// Mailer delivers password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// NormalizeEmail lower-cases and trims an address before it is stored or
// looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
