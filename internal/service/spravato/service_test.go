package spravato

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
)

func TestTracker(t *testing.T) {
	t.Parallel()

	tr := NewTracker(repository.NewMemory().Spravato)
	ctx := t.Context()

	if _, err := tr.Trends(ctx, "u1"); !errors.Is(err, formula.ErrNoData) {
		t.Errorf("Trends(empty) error = %v, want ErrNoData", err)
	}
	next, err := tr.NextDose(ctx, "u1")
	if err != nil {
		t.Fatalf("NextDose(empty) error = %v", err)
	}
	if next.Dose != 56 {
		t.Errorf("NextDose(empty) = %v, want 56", next.Dose)
	}

	_, analysis, err := tr.Record(ctx, "u1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		formula.SpravatoSession{DoseMg: 56, Dissociation: 6, MoodAfter: 7})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if math.Abs(analysis.Efficacy-12.857142857) > 1e-6 {
		t.Errorf("Efficacy = %v, want ~12.857", analysis.Efficacy)
	}

	if _, err := tr.Record(ctx, "u1", time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		formula.SpravatoSession{DoseMg: 56, Dissociation: 3, MoodAfter: -2}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	next, err = tr.NextDose(ctx, "u1")
	if err != nil {
		t.Fatalf("NextDose() error = %v", err)
	}
	if next.Dose != 84 {
		t.Errorf("NextDose() = %v, want 84 after a negative mood response", next.Dose)
	}

	trends, err := tr.Trends(ctx, "u1")
	if err != nil {
		t.Fatalf("Trends() error = %v", err)
	}
	if trends.Count != 2 || trends.BestIndex != 0 {
		t.Errorf("Trends() count/best = %d/%d, want 2/0", trends.Count, trends.BestIndex)
	}

	if _, _, err := tr.Record(ctx, "u1", time.Time{}, formula.SpravatoSession{DoseMg: 0}); !errors.Is(err, formula.ErrInvalidInput) {
		t.Errorf("Record(dose 0) error = %v, want ErrInvalidInput", err)
	}
}
