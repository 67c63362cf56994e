// Package journal is synthctl's offline training and wellness log, kept in a
// local SQLite database.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/migrations"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateDay is returned when a daily entry already exists for a date.
var ErrDuplicateDay = errors.New("daily entry already recorded for this date")

type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the journal at path and applies pending
// migrations.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// sqlite serializes writers
	db.SetMaxOpenConns(1)

	if _, err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

type Load struct {
	ID              int64
	Date            time.Time
	RPE             float64
	DurationMinutes float64
	Load            float64
	Note            string
	CreatedAt       time.Time
}

// AddLoad records a session's internal load (RPE x minutes). A zero date
// means today.
func (j *Journal) AddLoad(ctx context.Context, date time.Time, rpe, durationMinutes float64, note string) (Load, error) {
	if rpe < 0 || rpe > 10 {
		return Load{}, fmt.Errorf("%w: rpe must be between 0 and 10", formula.ErrInvalidInput)
	}
	if durationMinutes < 0 {
		return Load{}, fmt.Errorf("%w: duration must not be negative", formula.ErrInvalidInput)
	}

	l := Load{
		Date:            j.day(date),
		RPE:             rpe,
		DurationMinutes: durationMinutes,
		Load:            formula.SessionLoad(durationMinutes, rpe),
		Note:            note,
		CreatedAt:       j.now().UTC(),
	}

	res, err := j.db.ExecContext(ctx,
		`INSERT INTO training_loads (date, rpe, duration_minutes, load, note, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		l.Date.Format(time.DateOnly), l.RPE, l.DurationMinutes, l.Load, l.Note, l.CreatedAt,
	)
	if err != nil {
		return Load{}, fmt.Errorf("inserting training load: %w", err)
	}
	if l.ID, err = res.LastInsertId(); err != nil {
		return Load{}, fmt.Errorf("reading training load id: %w", err)
	}
	return l, nil
}

type Day struct {
	Date   time.Time
	Sleep  float64
	Energy float64
	Stress float64
	Mood   float64
	Pain   float64
}

// AddDay records the daily wellness entry. Each date holds at most one entry.
func (j *Journal) AddDay(ctx context.Context, d Day) (Day, error) {
	d.Date = j.day(d.Date)

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO daily_entries (date, sleep, energy, stress, mood, pain) VALUES (?, ?, ?, ?, ?, ?)`,
		d.Date.Format(time.DateOnly), d.Sleep, d.Energy, d.Stress, d.Mood, d.Pain,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return Day{}, ErrDuplicateDay
		}
		return Day{}, fmt.Errorf("inserting daily entry: %w", err)
	}
	return d, nil
}

// Loads lists the training loads of the last days days, oldest first.
func (j *Journal) Loads(ctx context.Context, days int) ([]Load, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, date, rpe, duration_minutes, load, note, created_at
		FROM training_loads WHERE date >= ? ORDER BY date, id`,
		j.cutoff(days),
	)
	if err != nil {
		return nil, fmt.Errorf("listing training loads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var loads []Load
	for rows.Next() {
		var (
			l    Load
			date string
		)
		if err := rows.Scan(&l.ID, &date, &l.RPE, &l.DurationMinutes, &l.Load, &l.Note, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning training load: %w", err)
		}
		if l.Date, err = time.Parse(time.DateOnly, date); err != nil {
			return nil, fmt.Errorf("parsing training load date %q: %w", date, err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// Days lists the daily entries of the last days days, oldest first.
func (j *Journal) Days(ctx context.Context, days int) ([]Day, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT date, sleep, energy, stress, mood, pain
		FROM daily_entries WHERE date >= ? ORDER BY date`,
		j.cutoff(days),
	)
	if err != nil {
		return nil, fmt.Errorf("listing daily entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Day
	for rows.Next() {
		var (
			d    Day
			date string
		)
		if err := rows.Scan(&date, &d.Sleep, &d.Energy, &d.Stress, &d.Mood, &d.Pain); err != nil {
			return nil, fmt.Errorf("scanning daily entry: %w", err)
		}
		if d.Date, err = time.Parse(time.DateOnly, date); err != nil {
			return nil, fmt.Errorf("parsing daily entry date %q: %w", date, err)
		}
		entries = append(entries, d)
	}
	return entries, rows.Err()
}

// Readiness analyses the densified daily load series of the last days days,
// ending today.
// Returns formula.ErrNoData when nothing was logged.
func (j *Journal) Readiness(ctx context.Context, days int) (analytics.Readiness, error) {
	loads, err := j.Loads(ctx, days)
	if err != nil {
		return analytics.Readiness{}, err
	}

	dated := make([]analytics.DatedLoad, len(loads))
	for i, l := range loads {
		dated[i] = analytics.DatedLoad{Date: l.Date, Load: l.Load}
	}

	r, err := analytics.AnalyzeReadiness(analytics.DailySeries(dated, j.now()))
	if err != nil {
		return analytics.Readiness{}, fmt.Errorf("analyzing readiness: %w", err)
	}
	return r, nil
}

func (j *Journal) day(t time.Time) time.Time {
	if t.IsZero() {
		t = j.now()
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (j *Journal) cutoff(days int) string {
	return repository.Cutoff(j.now(), days).Format(time.DateOnly)
}
