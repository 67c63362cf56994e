package repository

import (
	"context"
	"errors"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique key already exists, such as a
	// second daily metric for the same day or a reused email.
	ErrConflict = errors.New("record already exists")
)

// DB is satisfied by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	Users        UserRepository
	DailyMetrics DailyMetricRepository
	Training     TrainingRepository
	Spravato     SpravatoRepository
	Jumps        JumpRepository
}

func New(db DB) *Repository {
	return &Repository{
		Users:        &userRepo{db: db},
		DailyMetrics: &dailyMetricRepo{db: db},
		Training:     &trainingRepo{db: db},
		Spravato:     &spravatoRepo{db: db},
		Jumps:        &jumpRepo{db: db},
	}
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// DailyMetric is immutable once written; there is one per user per day.
type DailyMetric struct {
	ID              string
	UserID          string
	Date            time.Time
	Sleep           float64
	Energy          float64
	Stress          float64
	Mood            float64
	Pain            float64
	RPE             float64
	DurationMinutes float64
	CreatedAt       time.Time
}

// TrainingSession keeps only the derived loads, not the exercise list.
type TrainingSession struct {
	ID              string
	UserID          string
	Date            time.Time
	DurationMinutes float64
	RPE             float64
	InternalLoad    float64
	VolumeLoad      float64
	Classification  formula.LoadClass
	CreatedAt       time.Time
}

type SpravatoSession struct {
	ID           string
	UserID       string
	Date         time.Time
	DoseMg       float64
	Dissociation float64
	MoodAfter    float64
	CreatedAt    time.Time
}

func (s SpravatoSession) Formula() formula.SpravatoSession {
	return formula.SpravatoSession{DoseMg: s.DoseMg, Dissociation: s.Dissociation, MoodAfter: s.MoodAfter}
}

type JumpTest struct {
	ID            string
	UserID        string
	Date          time.Time
	HeightCm      float64
	BodyWeightKg  float64
	BaselineCm    float64
	PercentChange float64
	Status        formula.ReadinessStatus
	CreatedAt     time.Time
}

// MetricColumn names a numeric daily_metrics column that can be charted.
type MetricColumn string

const (
	ColumnSleep    MetricColumn = "sleep"
	ColumnEnergy   MetricColumn = "energy"
	ColumnStress   MetricColumn = "stress"
	ColumnMood     MetricColumn = "mood"
	ColumnPain     MetricColumn = "pain"
	ColumnRPE      MetricColumn = "rpe"
	ColumnDuration MetricColumn = "duration_minutes"
)

var metricColumns = map[MetricColumn]func(DailyMetric) float64{
	ColumnSleep:    func(m DailyMetric) float64 { return m.Sleep },
	ColumnEnergy:   func(m DailyMetric) float64 { return m.Energy },
	ColumnStress:   func(m DailyMetric) float64 { return m.Stress },
	ColumnMood:     func(m DailyMetric) float64 { return m.Mood },
	ColumnPain:     func(m DailyMetric) float64 { return m.Pain },
	ColumnRPE:      func(m DailyMetric) float64 { return m.RPE },
	ColumnDuration: func(m DailyMetric) float64 { return m.DurationMinutes },
}

func (c MetricColumn) Valid() bool {
	_, ok := metricColumns[c]
	return ok
}

type SeriesPoint struct {
	Date  time.Time
	Value float64
}

type UserRepository interface {
	// Create stores the user and its profile together.
	// Returns ErrConflict if the email is taken.
	Create(ctx context.Context, user User, profile analytics.Profile) error
	// GetByEmail returns ErrNotFound for an unknown email.
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetProfile(ctx context.Context, userID string) (analytics.Profile, error)
}

// List methods return records on or after since, oldest first.
type DailyMetricRepository interface {
	// Insert returns ErrConflict if the user already has a metric that day.
	Insert(ctx context.Context, m DailyMetric) error
	List(ctx context.Context, userID string, since time.Time) ([]DailyMetric, error)
	// Latest returns ErrNotFound when the user has no metrics.
	Latest(ctx context.Context, userID string) (DailyMetric, error)
	Series(ctx context.Context, userID string, column MetricColumn, since time.Time) ([]SeriesPoint, error)
}

type TrainingRepository interface {
	Insert(ctx context.Context, s TrainingSession) error
	List(ctx context.Context, userID string, since time.Time) ([]TrainingSession, error)
}

type SpravatoRepository interface {
	Insert(ctx context.Context, s SpravatoSession) error
	// List returns the full history, oldest first.
	List(ctx context.Context, userID string) ([]SpravatoSession, error)
}

type JumpRepository interface {
	Insert(ctx context.Context, j JumpTest) error
	List(ctx context.Context, userID string, since time.Time) ([]JumpTest, error)
	// Recent returns up to n of the newest tests, oldest first.
	Recent(ctx context.Context, userID string, n int) ([]JumpTest, error)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Cutoff is the first calendar day (UTC) inside a window of the last days
// days ending at now. The window includes today, so days=7 spans 7 calendar
// days. Non-positive days yield today.
func Cutoff(now time.Time, days int) time.Time {
	days = max(days, 1)
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d-days+1, 0, 0, 0, 0, time.UTC)
}
