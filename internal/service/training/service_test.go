package training

import (
	"errors"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
)

func newTestTracker(now time.Time) *Tracker {
	tr := NewTracker(repository.NewMemory().Training)
	tr.now = func() time.Time { return now }
	return tr
}

func TestRecord(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr := newTestTracker(now)

	s, err := tr.Record(t.Context(), "u1", time.Time{}, analytics.Session{
		DurationMinutes: 60,
		RPE:             7,
		Exercises:       []formula.Exercise{{Name: "squat", Sets: 5, Reps: 5, Load: 100}},
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if s.InternalLoad != 420 || s.VolumeLoad != 2500 {
		t.Errorf("loads = %v/%v, want 420/2500", s.InternalLoad, s.VolumeLoad)
	}
	if s.Classification != formula.LoadModerate {
		t.Errorf("Classification = %q, want moderate", s.Classification)
	}
	if want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC); !s.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", s.Date, want)
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	tr := newTestTracker(now)
	ctx := t.Context()

	if _, err := tr.Readiness(ctx, "u1", 42); !errors.Is(err, formula.ErrNoData) {
		t.Fatalf("Readiness(empty) error = %v, want ErrNoData", err)
	}

	// 28 consecutive days: 21 at 300 then 7 at 600
	start := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	for i := range 28 {
		rpe := 5.0
		if i >= 21 {
			rpe = 10
		}
		if _, err := tr.Record(ctx, "u1", start.AddDate(0, 0, i), analytics.Session{DurationMinutes: 60, RPE: rpe}); err != nil {
			t.Fatalf("Record(day %d) error = %v", i, err)
		}
	}

	r, err := tr.Readiness(ctx, "u1", 42)
	if err != nil {
		t.Fatalf("Readiness() error = %v", err)
	}
	if r.Days != 28 {
		t.Errorf("Days = %d, want 28", r.Days)
	}
	if r.ACWR == nil {
		t.Fatal("ACWR = nil with 28 days of data")
	}
	if r.ACWR.Acute != 600 || r.ACWR.Chronic != 375 {
		t.Errorf("acute/chronic = %v/%v, want 600/375", r.ACWR.Acute, r.ACWR.Chronic)
	}
	if r.ACWR.Risk != formula.RiskHigh {
		t.Errorf("Risk = %q, want high", r.ACWR.Risk)
	}

	short, err := tr.Readiness(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("Readiness(10) error = %v", err)
	}
	if short.ACWR != nil {
		t.Error("ACWR computed from fewer than 28 days")
	}
}

func TestReadinessAfterBreak(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	tr := newTestTracker(now)
	ctx := t.Context()

	// 28 days at 300 ending two weeks ago
	start := now.AddDate(0, 0, -41)
	for i := range 28 {
		if _, err := tr.Record(ctx, "u1", start.AddDate(0, 0, i), analytics.Session{DurationMinutes: 60, RPE: 5}); err != nil {
			t.Fatalf("Record(day %d) error = %v", i, err)
		}
	}

	r, err := tr.Readiness(ctx, "u1", 60)
	if err != nil {
		t.Fatalf("Readiness() error = %v", err)
	}
	if r.Days != 42 {
		t.Errorf("Days = %d, want 42", r.Days)
	}
	if r.WeeklyLoad != 0 {
		t.Errorf("WeeklyLoad = %v, want 0 after two rest weeks", r.WeeklyLoad)
	}
	if r.ACWR == nil {
		t.Fatal("ACWR = nil with 42 days of series")
	}
	if r.ACWR.Acute != 0 || r.ACWR.Chronic != 150 {
		t.Errorf("acute/chronic = %v/%v, want 0/150", r.ACWR.Acute, r.ACWR.Chronic)
	}
	if r.ACWR.Risk != formula.RiskDetraining {
		t.Errorf("Risk = %q, want detraining", r.ACWR.Risk)
	}
}
