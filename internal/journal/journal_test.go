package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var now = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func newJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(t.Context(), filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	j.now = func() time.Time { return now }
	return j
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddLoad(t *testing.T) {
	t.Parallel()

	j := newJournal(t)
	ctx := t.Context()

	l, err := j.AddLoad(ctx, time.Time{}, 7, 60, "tempo run")
	if err != nil {
		t.Fatalf("AddLoad() error = %v", err)
	}
	if l.ID == 0 || l.Load != 420 || !l.Date.Equal(date("2026-03-10")) {
		t.Errorf("AddLoad() = %+v, want load 420 today", l)
	}

	if _, err := j.AddLoad(ctx, time.Time{}, 11, 60, ""); !errors.Is(err, formula.ErrInvalidInput) {
		t.Errorf("AddLoad(rpe 11) error = %v, want ErrInvalidInput", err)
	}
	if _, err := j.AddLoad(ctx, time.Time{}, 5, -1, ""); !errors.Is(err, formula.ErrInvalidInput) {
		t.Errorf("AddLoad(negative duration) error = %v, want ErrInvalidInput", err)
	}

	loads, err := j.Loads(ctx, 30)
	if err != nil {
		t.Fatalf("Loads() error = %v", err)
	}
	if diff := cmp.Diff([]Load{l}, loads, cmpopts.IgnoreFields(Load{}, "CreatedAt")); diff != "" {
		t.Errorf("Loads() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadsWindowAndOrder(t *testing.T) {
	t.Parallel()

	j := newJournal(t)
	ctx := t.Context()

	for _, d := range []string{"2026-03-09", "2026-01-01", "2026-03-01"} {
		if _, err := j.AddLoad(ctx, date(d), 5, 60, ""); err != nil {
			t.Fatalf("AddLoad(%s) error = %v", d, err)
		}
	}

	loads, err := j.Loads(ctx, 30)
	if err != nil {
		t.Fatalf("Loads() error = %v", err)
	}
	var got []string
	for _, l := range loads {
		got = append(got, l.Date.Format(time.DateOnly))
	}
	if diff := cmp.Diff([]string{"2026-03-01", "2026-03-09"}, got); diff != "" {
		t.Errorf("Loads() dates mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDayDuplicate(t *testing.T) {
	t.Parallel()

	j := newJournal(t)
	ctx := t.Context()

	day := Day{Date: date("2026-03-10"), Sleep: 7, Energy: 6, Stress: 3, Mood: 7, Pain: 1}
	if _, err := j.AddDay(ctx, day); err != nil {
		t.Fatalf("AddDay() error = %v", err)
	}
	if _, err := j.AddDay(ctx, day); !errors.Is(err, ErrDuplicateDay) {
		t.Errorf("second AddDay() error = %v, want ErrDuplicateDay", err)
	}

	days, err := j.Days(ctx, 7)
	if err != nil {
		t.Fatalf("Days() error = %v", err)
	}
	if diff := cmp.Diff([]Day{day}, days); diff != "" {
		t.Errorf("Days() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	j := newJournal(t)
	ctx := t.Context()

	if _, err := j.Readiness(ctx, 30); !errors.Is(err, formula.ErrNoData) {
		t.Fatalf("Readiness(empty) error = %v, want ErrNoData", err)
	}

	// two sessions on the first day, a rest day, one more, then rest today
	for _, in := range []struct {
		date string
		rpe  float64
	}{
		{"2026-03-07", 5},
		{"2026-03-07", 5},
		{"2026-03-09", 6},
	} {
		if _, err := j.AddLoad(ctx, date(in.date), in.rpe, 60, ""); err != nil {
			t.Fatalf("AddLoad() error = %v", err)
		}
	}

	r, err := j.Readiness(ctx, 30)
	if err != nil {
		t.Fatalf("Readiness() error = %v", err)
	}
	if r.Days != 4 {
		t.Errorf("Readiness().Days = %d, want 4", r.Days)
	}
	if r.WeeklyLoad != 960 {
		t.Errorf("Readiness().WeeklyLoad = %v, want 960", r.WeeklyLoad)
	}
	if r.ACWR != nil {
		t.Errorf("Readiness().ACWR = %+v, want nil with 4 days", r.ACWR)
	}
}
