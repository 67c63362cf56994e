package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/google/go-cmp/cmp"
)

func TestCalculateLoad(t *testing.T) {
	t.Parallel()

	got := CalculateLoad(Session{
		DurationMinutes: 70,
		RPE:             9,
		Exercises: []formula.Exercise{
			{Name: "squat", Sets: 5, Reps: 3, Load: 140},
			{Name: "row", Sets: 4, Reps: 10, Load: 60},
		},
	})
	want := SessionLoad{InternalLoad: 630, VolumeLoad: 4500, Classification: formula.LoadExtreme}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CalculateLoad() mismatch (-want +got):\n%s", diff)
	}
}

func TestDailySeries(t *testing.T) {
	t.Parallel()

	d := func(day, hour int) time.Time {
		return time.Date(2025, time.January, day, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		loads []DatedLoad
		today time.Time
		want  []float64
	}{
		{name: "empty", today: d(5, 12), want: nil},
		{
			name:  "single",
			loads: []DatedLoad{{Date: d(3, 9), Load: 300}},
			today: d(3, 20),
			want:  []float64{300},
		},
		{
			name: "gaps are rest days and same day is summed",
			loads: []DatedLoad{
				{Date: d(5, 18), Load: 100},
				{Date: d(1, 7), Load: 300},
				{Date: d(5, 6), Load: 250},
				{Date: d(3, 12), Load: 400},
			},
			today: d(5, 23),
			want:  []float64{300, 0, 400, 0, 350},
		},
		{
			name:  "trailing rest days run through today",
			loads: []DatedLoad{{Date: d(1, 8), Load: 200}, {Date: d(2, 8), Load: 100}},
			today: d(5, 1),
			want:  []float64{200, 100, 0, 0, 0},
		},
		{
			name:  "future loads are dropped",
			loads: []DatedLoad{{Date: d(1, 8), Load: 200}, {Date: d(9, 8), Load: 500}},
			today: d(2, 8),
			want:  []float64{200, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, DailySeries(tt.loads, tt.today)); diff != "" {
				t.Errorf("DailySeries() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeReadiness(t *testing.T) {
	t.Parallel()

	t.Run("no data", func(t *testing.T) {
		t.Parallel()
		if _, err := AnalyzeReadiness(nil); !errors.Is(err, formula.ErrNoData) {
			t.Fatalf("AnalyzeReadiness(nil) error = %v, want ErrNoData", err)
		}
	})

	t.Run("short history has no acwr", func(t *testing.T) {
		t.Parallel()
		r, err := AnalyzeReadiness([]float64{300, 0, 400})
		if err != nil {
			t.Fatalf("AnalyzeReadiness() error = %v", err)
		}
		if r.ACWR != nil {
			t.Errorf("ACWR = %+v, want nil", *r.ACWR)
		}
		if r.Days != 3 || r.WeeklyLoad != 700 {
			t.Errorf("Days, WeeklyLoad = %d, %v, want 3, 700", r.Days, r.WeeklyLoad)
		}
	})

	t.Run("four weeks", func(t *testing.T) {
		t.Parallel()
		loads := make([]float64, 28)
		for i := range loads {
			loads[i] = 300
			if i >= 21 {
				loads[i] = 600
			}
		}
		r, err := AnalyzeReadiness(loads)
		if err != nil {
			t.Fatalf("AnalyzeReadiness() error = %v", err)
		}
		if r.ACWR == nil || r.ACWR.Risk != formula.RiskHigh {
			t.Fatalf("ACWR = %+v, want high risk", r.ACWR)
		}
		if r.WeeklyLoad != 4200 {
			t.Errorf("WeeklyLoad = %v, want 4200", r.WeeklyLoad)
		}
		// a flat final week has no spread
		if r.Monotony != 0 || r.Strain != 0 {
			t.Errorf("Monotony, Strain = %v, %v, want 0, 0", r.Monotony, r.Strain)
		}
		if len(r.Trend.TSB) != 28 {
			t.Errorf("len(Trend.TSB) = %d, want 28", len(r.Trend.TSB))
		}
	})
}
