package overview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/service/spravato"
	"github.com/garrettladley/synthonia/internal/service/training"
	"github.com/garrettladley/synthonia/internal/service/wellness"
)

func newAggregator(repo *repository.Repository) *Aggregator {
	return NewAggregator(
		wellness.NewJournal(repo.DailyMetrics),
		training.NewTracker(repo.Training),
		spravato.NewTracker(repo.Spravato),
	)
}

func TestGetEmpty(t *testing.T) {
	t.Parallel()

	o, err := newAggregator(repository.NewMemory()).Get(t.Context(), "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if o.Latest != nil || o.Readiness != nil || o.Spravato != nil {
		t.Errorf("Get() = %+v, want empty sections", o)
	}
	if o.NextDose.Dose != formula.DefaultStartingDose {
		t.Errorf("NextDose = %v, want %v", o.NextDose.Dose, formula.DefaultStartingDose)
	}
}

func TestGetPopulated(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemory()
	ctx := t.Context()
	today := time.Now().UTC()

	if _, err := wellness.NewJournal(repo.DailyMetrics).Record(ctx, "u1", wellness.DailyInput{Date: today, Mood: 7, PainScores: []float64{1}}); err != nil {
		t.Fatalf("wellness Record() error = %v", err)
	}
	if _, err := training.NewTracker(repo.Training).Record(ctx, "u1", today, analytics.Session{DurationMinutes: 45, RPE: 6}); err != nil {
		t.Fatalf("training Record() error = %v", err)
	}
	if _, _, err := spravato.NewTracker(repo.Spravato).Record(ctx, "u1", today, formula.SpravatoSession{DoseMg: 56, Dissociation: 5, MoodAfter: 2}); err != nil {
		t.Fatalf("spravato Record() error = %v", err)
	}

	o, err := newAggregator(repo).Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if o.Latest == nil || o.Latest.Mood != 7 {
		t.Errorf("Latest = %+v, want mood 7", o.Latest)
	}
	if o.Readiness == nil || o.Readiness.Days != 1 {
		t.Errorf("Readiness = %+v, want one day", o.Readiness)
	}
	if o.Spravato == nil || o.Spravato.Count != 1 {
		t.Errorf("Spravato = %+v, want one session", o.Spravato)
	}
}

type failingWellness struct{ wellness.Service }

func (failingWellness) Latest(context.Context, string) (repository.DailyMetric, error) {
	return repository.DailyMetric{}, errors.New("connection reset")
}

func TestGetPropagatesFailure(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemory()
	agg := NewAggregator(failingWellness{}, training.NewTracker(repo.Training), spravato.NewTracker(repo.Spravato))

	if _, err := agg.Get(t.Context(), "u1"); err == nil {
		t.Fatal("Get() error = nil, want the wellness failure")
	}
}
