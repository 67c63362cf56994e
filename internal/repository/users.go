package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/jackc/pgx/v5"
)

type userRepo struct {
	db DB
}

func (r *userRepo) Create(ctx context.Context, user User, profile analytics.Profile) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
			user.ID, user.Email, user.PasswordHash,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO profiles (user_id, full_name, role) VALUES ($1, $2, $3)`,
			user.ID, profile.FullName, string(profile.Role),
		)
		return err
	})
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRow(ctx,
		`SELECT id::text, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) GetProfile(ctx context.Context, userID string) (analytics.Profile, error) {
	var (
		p    analytics.Profile
		role string
	)
	err := r.db.QueryRow(ctx,
		`SELECT user_id::text, full_name, role FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.FullName, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return analytics.Profile{}, ErrNotFound
	}
	if err != nil {
		return analytics.Profile{}, fmt.Errorf("getting profile: %w", err)
	}
	p.Role = analytics.Role(role)
	return p, nil
}
