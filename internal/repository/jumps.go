package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/jackc/pgx/v5"
)

const jumpColumns = `id::text, user_id::text, date, jump_height_cm, body_weight_kg, baseline_cm, percent_change, status, created_at`

type jumpRepo struct {
	db DB
}

func (r *jumpRepo) Insert(ctx context.Context, j JumpTest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jump_tests
			(id, user_id, date, jump_height_cm, body_weight_kg, baseline_cm, percent_change, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.UserID, j.Date, j.HeightCm, j.BodyWeightKg, j.BaselineCm, j.PercentChange, string(j.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting jump test: %w", err)
	}
	return nil
}

func (r *jumpRepo) List(ctx context.Context, userID string, since time.Time) ([]JumpTest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jumpColumns+` FROM jump_tests
			WHERE user_id = $1 AND date >= $2
			ORDER BY date ASC, created_at ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("listing jump tests: %w", err)
	}
	tests, err := pgx.CollectRows(rows, scanJumpTest)
	if err != nil {
		return nil, fmt.Errorf("scanning jump tests: %w", err)
	}
	return tests, nil
}

func (r *jumpRepo) Recent(ctx context.Context, userID string, n int) ([]JumpTest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jumpColumns+` FROM jump_tests
			WHERE user_id = $1
			ORDER BY date DESC, created_at DESC
			LIMIT $2`,
		userID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent jump tests: %w", err)
	}
	tests, err := pgx.CollectRows(rows, scanJumpTest)
	if err != nil {
		return nil, fmt.Errorf("scanning jump tests: %w", err)
	}
	slices.Reverse(tests)
	return tests, nil
}

func scanJumpTest(row pgx.CollectableRow) (JumpTest, error) {
	var (
		j      JumpTest
		status string
	)
	err := row.Scan(&j.ID, &j.UserID, &j.Date, &j.HeightCm, &j.BodyWeightKg,
		&j.BaselineCm, &j.PercentChange, &status, &j.CreatedAt)
	j.Status = formula.ReadinessStatus(status)
	return j, err
}
