package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/jackc/pgx/v5"
)

type trainingRepo struct {
	db DB
}

func (r *trainingRepo) Insert(ctx context.Context, s TrainingSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO training_sessions
			(id, user_id, date, duration_minutes, rpe, internal_load, volume_load, classification)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.UserID, s.Date, s.DurationMinutes, s.RPE, s.InternalLoad, s.VolumeLoad, string(s.Classification),
	)
	if err != nil {
		return fmt.Errorf("inserting training session: %w", err)
	}
	return nil
}

func (r *trainingRepo) List(ctx context.Context, userID string, since time.Time) ([]TrainingSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, user_id::text, date, duration_minutes, rpe, internal_load, volume_load, classification, created_at
			FROM training_sessions
			WHERE user_id = $1 AND date >= $2
			ORDER BY date ASC, created_at ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("listing training sessions: %w", err)
	}
	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TrainingSession, error) {
		var (
			s     TrainingSession
			class string
		)
		err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.DurationMinutes, &s.RPE,
			&s.InternalLoad, &s.VolumeLoad, &class, &s.CreatedAt)
		s.Classification = formula.LoadClass(class)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning training sessions: %w", err)
	}
	return sessions, nil
}
