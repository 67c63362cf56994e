package wellness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/google/uuid"
)

var ErrDuplicateDay = errors.New("daily metric already recorded for this date")

type DailyInput struct {
	Date       time.Time
	Sleep      float64
	Energy     float64
	Stress     float64
	Mood       float64
	PainScores []float64
	RPE        float64
	Duration   float64
}

type Service interface {
	// Record stores one day of metrics. Pain is the mean of PainScores.
	// Returns ErrDuplicateDay if the date is already recorded and
	// formula.ErrInvalidInput if PainScores is empty.
	Record(ctx context.Context, userID string, in DailyInput) (repository.DailyMetric, error)

	List(ctx context.Context, userID string, days int) ([]repository.DailyMetric, error)

	// Latest returns formula.ErrNoData when nothing is recorded.
	Latest(ctx context.Context, userID string) (repository.DailyMetric, error)

	Series(ctx context.Context, userID string, column repository.MetricColumn, days int) ([]repository.SeriesPoint, error)
}

type Journal struct {
	metrics repository.DailyMetricRepository
	now     func() time.Time
}

var _ Service = (*Journal)(nil)

func NewJournal(metrics repository.DailyMetricRepository) *Journal {
	return &Journal{metrics: metrics, now: time.Now}
}

func (s *Journal) Record(ctx context.Context, userID string, in DailyInput) (repository.DailyMetric, error) {
	pain, err := formula.DailyPain(in.PainScores)
	if err != nil {
		return repository.DailyMetric{}, fmt.Errorf("computing daily pain: %w", err)
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	y, m, d := date.Date()

	metric := repository.DailyMetric{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Sleep:           in.Sleep,
		Energy:          in.Energy,
		Stress:          in.Stress,
		Mood:            in.Mood,
		Pain:            pain,
		RPE:             in.RPE,
		DurationMinutes: in.Duration,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.metrics.Insert(ctx, metric); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return repository.DailyMetric{}, ErrDuplicateDay
		}
		return repository.DailyMetric{}, fmt.Errorf("recording daily metric: %w", err)
	}
	return metric, nil
}

func (s *Journal) List(ctx context.Context, userID string, days int) ([]repository.DailyMetric, error) {
	metrics, err := s.metrics.List(ctx, userID, repository.Cutoff(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("listing daily metrics: %w", err)
	}
	return metrics, nil
}

func (s *Journal) Latest(ctx context.Context, userID string) (repository.DailyMetric, error) {
	m, err := s.metrics.Latest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.DailyMetric{}, fmt.Errorf("%w: no daily metrics recorded", formula.ErrNoData)
	}
	if err != nil {
		return repository.DailyMetric{}, fmt.Errorf("getting latest daily metric: %w", err)
	}
	return m, nil
}

func (s *Journal) Series(ctx context.Context, userID string, column repository.MetricColumn, days int) ([]repository.SeriesPoint, error) {
	if !column.Valid() {
		return nil, fmt.Errorf("%w: unknown metric %q", formula.ErrInvalidInput, column)
	}
	points, err := s.metrics.Series(ctx, userID, column, repository.Cutoff(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("loading %s series: %w", column, err)
	}
	return points, nil
}
