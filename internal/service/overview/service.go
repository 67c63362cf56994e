package overview

import (
	"context"
	"errors"
	"fmt"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/service/spravato"
	"github.com/garrettladley/synthonia/internal/service/training"
	"github.com/garrettladley/synthonia/internal/service/wellness"
	"golang.org/x/sync/errgroup"
)

// ReadinessDays covers the 28 day chronic window plus the 42 day CTL
// horizon.
const ReadinessDays = 42

// Overview is nil-filled where the user has no data yet.
type Overview struct {
	Latest    *repository.DailyMetric
	Readiness *analytics.Readiness
	Spravato  *formula.TrendAnalysis
	NextDose  formula.DosePrediction
}

type Service interface {
	Get(ctx context.Context, userID string) (Overview, error)
}

type Aggregator struct {
	wellness wellness.Service
	training training.Service
	spravato spravato.Service
}

var _ Service = (*Aggregator)(nil)

func NewAggregator(w wellness.Service, t training.Service, s spravato.Service) *Aggregator {
	return &Aggregator{wellness: w, training: t, spravato: s}
}

// Get fetches each history concurrently; the first real failure cancels the
// rest.
func (a *Aggregator) Get(ctx context.Context, userID string) (Overview, error) {
	var o Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := a.wellness.Latest(ctx, userID)
		if err != nil {
			return ignoreNoData(err, "latest daily metric")
		}
		o.Latest = &m
		return nil
	})

	g.Go(func() error {
		r, err := a.training.Readiness(ctx, userID, ReadinessDays)
		if err != nil {
			return ignoreNoData(err, "training readiness")
		}
		o.Readiness = &r
		return nil
	})

	g.Go(func() error {
		trends, err := a.spravato.Trends(ctx, userID)
		if err != nil {
			return ignoreNoData(err, "spravato trends")
		}
		o.Spravato = &trends
		return nil
	})

	g.Go(func() error {
		next, err := a.spravato.NextDose(ctx, userID)
		if err != nil {
			return fmt.Errorf("next dose: %w", err)
		}
		o.NextDose = next
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return o, nil
}

func ignoreNoData(err error, what string) error {
	if errors.Is(err, formula.ErrNoData) {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
