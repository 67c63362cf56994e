package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const dailyMetricColumns = `id::text, user_id::text, date, sleep, energy, stress, mood, pain, rpe, duration_minutes, created_at`

type dailyMetricRepo struct {
	db DB
}

func (r *dailyMetricRepo) Insert(ctx context.Context, m DailyMetric) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO daily_metrics
			(id, user_id, date, sleep, energy, stress, mood, pain, rpe, duration_minutes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.UserID, m.Date, m.Sleep, m.Energy, m.Stress, m.Mood, m.Pain, m.RPE, m.DurationMinutes,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("inserting daily metric: %w", err)
	}
	return nil
}

func (r *dailyMetricRepo) List(ctx context.Context, userID string, since time.Time) ([]DailyMetric, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+dailyMetricColumns+` FROM daily_metrics
			WHERE user_id = $1 AND date >= $2
			ORDER BY date ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("listing daily metrics: %w", err)
	}
	metrics, err := pgx.CollectRows(rows, scanDailyMetric)
	if err != nil {
		return nil, fmt.Errorf("scanning daily metrics: %w", err)
	}
	return metrics, nil
}

func (r *dailyMetricRepo) Latest(ctx context.Context, userID string) (DailyMetric, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+dailyMetricColumns+` FROM daily_metrics
			WHERE user_id = $1
			ORDER BY date DESC
			LIMIT 1`,
		userID,
	)
	if err != nil {
		return DailyMetric{}, fmt.Errorf("getting latest daily metric: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanDailyMetric)
	if errors.Is(err, pgx.ErrNoRows) {
		return DailyMetric{}, ErrNotFound
	}
	if err != nil {
		return DailyMetric{}, fmt.Errorf("scanning daily metric: %w", err)
	}
	return m, nil
}

func (r *dailyMetricRepo) Series(ctx context.Context, userID string, column MetricColumn, since time.Time) ([]SeriesPoint, error) {
	if !column.Valid() {
		return nil, fmt.Errorf("unknown metric column %q", column)
	}

	// column is checked against a fixed set above
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT date, %s FROM daily_metrics
			WHERE user_id = $1 AND date >= $2
			ORDER BY date ASC`, column),
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s series: %w", column, err)
	}
	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SeriesPoint, error) {
		var p SeriesPoint
		err := row.Scan(&p.Date, &p.Value)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s series: %w", column, err)
	}
	return points, nil
}

func scanDailyMetric(row pgx.CollectableRow) (DailyMetric, error) {
	var m DailyMetric
	err := row.Scan(
		&m.ID, &m.UserID, &m.Date,
		&m.Sleep, &m.Energy, &m.Stress, &m.Mood, &m.Pain, &m.RPE, &m.DurationMinutes,
		&m.CreatedAt,
	)
	return m, err
}
