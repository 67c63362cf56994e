package jump

import (
	"errors"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
)

func ptr(f float64) *float64 { return &f }

func TestRecordBaseline(t *testing.T) {
	t.Parallel()

	tr := NewTracker(repository.NewMemory().Jumps)
	ctx := t.Context()
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	// no history: default 40cm baseline
	first, readiness, err := tr.Record(ctx, "u1", Input{Date: day(1), HeightCm: 34, BodyWeightKg: 80})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first.BaselineCm != 40 {
		t.Errorf("BaselineCm = %v, want 40", first.BaselineCm)
	}
	if readiness.Status != formula.StatusHighFatigue {
		t.Errorf("Status = %q, want High Fatigue", readiness.Status)
	}

	// rolling baseline is the mean of prior jumps
	second, _, err := tr.Record(ctx, "u1", Input{Date: day(2), HeightCm: 36, BodyWeightKg: 80})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if second.BaselineCm != 34 {
		t.Errorf("rolling BaselineCm = %v, want 34", second.BaselineCm)
	}

	third, readiness, err := tr.Record(ctx, "u1", Input{Date: day(3), HeightCm: 44, BodyWeightKg: 80, BaselineCm: ptr(40)})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if third.BaselineCm != 40 || readiness.Status != formula.StatusPotentiation {
		t.Errorf("override baseline/status = %v/%q, want 40/Potentiation", third.BaselineCm, readiness.Status)
	}

	if _, _, err := tr.Record(ctx, "u1", Input{HeightCm: 40, BodyWeightKg: 80, BaselineCm: ptr(0)}); !errors.Is(err, formula.ErrInvalidInput) {
		t.Errorf("Record(baseline 0) error = %v, want ErrInvalidInput", err)
	}
	if _, _, err := tr.Record(ctx, "u1", Input{HeightCm: 40}); !errors.Is(err, formula.ErrInvalidInput) {
		t.Errorf("Record(no body weight) error = %v, want ErrInvalidInput", err)
	}
}
