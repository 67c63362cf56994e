package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type spravatoRepo struct {
	db DB
}

func (r *spravatoRepo) Insert(ctx context.Context, s SpravatoSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO spravato_sessions
			(id, user_id, date, dose_mg, dissociation_level, mood_24h_after)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.UserID, s.Date, s.DoseMg, s.Dissociation, s.MoodAfter,
	)
	if err != nil {
		return fmt.Errorf("inserting spravato session: %w", err)
	}
	return nil
}

func (r *spravatoRepo) List(ctx context.Context, userID string) ([]SpravatoSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, user_id::text, date, dose_mg, dissociation_level, mood_24h_after, created_at
			FROM spravato_sessions
			WHERE user_id = $1
			ORDER BY date ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing spravato sessions: %w", err)
	}
	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SpravatoSession, error) {
		var s SpravatoSession
		err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.DoseMg, &s.Dissociation, &s.MoodAfter, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning spravato sessions: %w", err)
	}
	return sessions, nil
}
