package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/session"
	"github.com/garrettladley/synthonia/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	// ResetURL is the front-end page that receives ?token=.
	ResetURL   string
	BcryptCost int
}

type Password struct {
	users    repository.UserRepository
	sessions storage.SessionStore
	resets   storage.ResetTokenStore
	mailer   Mailer
	cfg      Config
	now      func() time.Time

	// compared against when the email is unknown so sign-in takes the
	// same time either way
	dummyHash []byte
}

var _ Service = (*Password)(nil)

func NewPassword(
	users repository.UserRepository,
	sessions storage.SessionStore,
	resets storage.ResetTokenStore,
	mailer Mailer,
	cfg Config,
) (*Password, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("synthonia-dummy-password"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}
	return &Password{
		users:     users,
		sessions:  sessions,
		resets:    resets,
		mailer:    mailer,
		cfg:       cfg,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func (s *Password) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := repository.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	role := req.Role
	if role == "" {
		role = analytics.RoleSubject
	}
	profile := analytics.Profile{ID: user.ID, Role: role, FullName: req.FullName}

	if err := s.users.Create(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.startSession(ctx, user.ID)
}

func (s *Password) SignIn(ctx context.Context, req SignInRequest) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user.ID)
}

func (s *Password) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, session.Hash(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *Password) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	userID, err := s.sessions.GetSession(ctx, session.Hash(token))
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("getting session: %w", err)
	}
	return userID, nil
}

func (s *Password) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting user: %w", err)
	}

	token, err := session.NewToken()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}
	if err := s.resets.SetResetToken(ctx, session.Hash(token), user.ID, s.cfg.ResetTTL); err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, email, s.resetLink(token)); err != nil {
		return fmt.Errorf("sending reset link: %w", err)
	}
	return nil
}

func (s *Password) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.resets.ConsumeResetToken(ctx, session.Hash(token))
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("consuming reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("updating password: %w", err)
	}

	if err := s.sessions.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("revoking sessions: %w", err)
	}
	return nil
}

func (s *Password) startSession(ctx context.Context, userID string) (*Session, error) {
	token, err := session.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}
	if err := s.sessions.CreateSession(ctx, session.Hash(token), userID, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.cfg.SessionTTL).UTC(),
	}, nil
}

func (s *Password) resetLink(token string) string {
	u, err := url.Parse(s.cfg.ResetURL)
	if err != nil {
		return s.cfg.ResetURL + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
