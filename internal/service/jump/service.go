package jump

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/google/uuid"
)

// BaselineWindow is how many past jumps make up the rolling baseline.
const BaselineWindow = 5

type Input struct {
	Date         time.Time
	HeightCm     float64
	BodyWeightKg float64
	// BaselineCm overrides the rolling baseline when set.
	BaselineCm *float64
}

type Service interface {
	// Record classifies the jump against the caller's baseline, or the mean
	// of the last BaselineWindow jumps, then stores it.
	Record(ctx context.Context, userID string, in Input) (repository.JumpTest, formula.JumpReadiness, error)

	List(ctx context.Context, userID string, days int) ([]repository.JumpTest, error)
}

type Tracker struct {
	tests repository.JumpRepository
	now   func() time.Time
}

var _ Service = (*Tracker)(nil)

func NewTracker(tests repository.JumpRepository) *Tracker {
	return &Tracker{tests: tests, now: time.Now}
}

func (t *Tracker) Record(ctx context.Context, userID string, in Input) (repository.JumpTest, formula.JumpReadiness, error) {
	baseline, err := t.baseline(ctx, userID, in.BaselineCm)
	if err != nil {
		return repository.JumpTest{}, formula.JumpReadiness{}, err
	}

	readiness, err := analytics.JumpTestAnalyzer{BaselineCm: baseline}.Analyze(in.HeightCm, in.BodyWeightKg)
	if err != nil {
		return repository.JumpTest{}, formula.JumpReadiness{}, err
	}

	date := in.Date
	if date.IsZero() {
		date = t.now()
	}
	y, m, d := date.Date()

	test := repository.JumpTest{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		HeightCm:      in.HeightCm,
		BodyWeightKg:  in.BodyWeightKg,
		BaselineCm:    baseline,
		PercentChange: readiness.PercentChange,
		Status:        readiness.Status,
		CreatedAt:     t.now().UTC(),
	}
	if err := t.tests.Insert(ctx, test); err != nil {
		return repository.JumpTest{}, formula.JumpReadiness{}, fmt.Errorf("recording jump test: %w", err)
	}
	return test, readiness, nil
}

func (t *Tracker) baseline(ctx context.Context, userID string, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}

	recent, err := t.tests.Recent(ctx, userID, BaselineWindow)
	if err != nil {
		return 0, fmt.Errorf("loading recent jump tests: %w", err)
	}
	heights := make([]float64, 0, len(recent))
	for _, j := range recent {
		heights = append(heights, j.HeightCm)
	}
	return analytics.RollingBaseline(heights, BaselineWindow), nil
}

func (t *Tracker) List(ctx context.Context, userID string, days int) ([]repository.JumpTest, error) {
	tests, err := t.tests.List(ctx, userID, repository.Cutoff(t.now(), days))
	if err != nil {
		return nil, fmt.Errorf("listing jump tests: %w", err)
	}
	return tests, nil
}
