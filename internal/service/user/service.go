package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type Service interface {
	// Profile returns the signed-in user's profile.
	// Returns ErrUserNotFound if the profile row is missing.
	Profile(ctx context.Context, userID string) (analytics.Profile, error)

	// Menu is the navigation for the user's role.
	Menu(ctx context.Context, userID string) ([]analytics.MenuItem, error)
}

type Store struct {
	users repository.UserRepository
}

var _ Service = (*Store)(nil)

func NewStore(users repository.UserRepository) *Store {
	return &Store{users: users}
}

func (s *Store) Profile(ctx context.Context, userID string) (analytics.Profile, error) {
	p, err := s.users.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return analytics.Profile{}, ErrUserNotFound
	}
	if err != nil {
		return analytics.Profile{}, fmt.Errorf("getting profile: %w", err)
	}
	return p, nil
}

func (s *Store) Menu(ctx context.Context, userID string) ([]analytics.MenuItem, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.Menu(p.Role), nil
}
