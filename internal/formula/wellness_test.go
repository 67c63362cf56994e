package formula

import (
	"errors"
	"math"
	"testing"
)

func TestRecoveryScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                    string
		muscular, mental, sleep float64
		wantScore               float64
		wantPercent             float64
	}{
		{name: "all zero", wantScore: 0, wantPercent: 0},
		{name: "all ten", muscular: 10, mental: 10, sleep: 10, wantScore: 10, wantPercent: 100},
		{name: "mixed", muscular: 6, mental: 7, sleep: 8, wantScore: 7, wantPercent: 70},
		{name: "out of range passes through", muscular: 12, mental: 12, sleep: 15, wantScore: 13, wantPercent: 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			score := RecoveryScore(tt.muscular, tt.mental, tt.sleep)
			if !approxEqual(score, tt.wantScore) {
				t.Errorf("RecoveryScore() = %v, want %v", score, tt.wantScore)
			}
			if got := RecoveryPercent(score); !approxEqual(got, tt.wantPercent) {
				t.Errorf("RecoveryPercent() = %v, want %v", got, tt.wantPercent)
			}
		})
	}
}

func TestRecoveryPercentInRange(t *testing.T) {
	t.Parallel()

	for m := 0.0; m <= 10; m += 2.5 {
		for n := 0.0; n <= 10; n += 2.5 {
			for s := 0.0; s <= 10; s += 2.5 {
				p := RecoveryPercent(RecoveryScore(m, n, s))
				if p < 0 || p > 100 {
					t.Fatalf("RecoveryPercent(RecoveryScore(%v, %v, %v)) = %v, want within [0, 100]", m, n, s, p)
				}
			}
		}
	}
}

func TestEmotionalScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   [5]float64
		want float64
	}{
		{name: "balanced", in: [5]float64{5, 5, 5, 5, 5}, want: 6},
		{name: "all positive", in: [5]float64{10, 10, 10, 0, 0}, want: 11},
		{name: "all negative", in: [5]float64{0, 0, 0, 10, 10}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := EmotionalScore(tt.in[0], tt.in[1], tt.in[2], tt.in[3], tt.in[4])
			if !approxEqual(got, tt.want) {
				t.Errorf("EmotionalScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDailyPain(t *testing.T) {
	t.Parallel()

	got, err := DailyPain([]float64{2, 4, 6})
	if err != nil {
		t.Fatalf("DailyPain() error = %v", err)
	}
	if !approxEqual(got, 4) {
		t.Errorf("DailyPain() = %v, want 4", got)
	}

	if _, err := DailyPain(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("DailyPain(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestQuestionnaireScores(t *testing.T) {
	t.Parallel()

	if got := DASS21Subscore([]float64{1, 2, 3, 0, 1, 2, 3}); got != 24 {
		t.Errorf("DASS21Subscore() = %v, want 24", got)
	}
	if got := FlowScore([]float64{5, 5, 5, 5, 5, 5, 5, 5, 5}); !approxEqual(got, 10) {
		t.Errorf("FlowScore(max) = %v, want 10", got)
	}
	if got := FlowScore([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1}); !approxEqual(got, 0) {
		t.Errorf("FlowScore(min) = %v, want 0", got)
	}
	if got := AdditiveScore(map[string]float64{"q1": 3, "q2": 2, "q3": 1}); got != 6 {
		t.Errorf("AdditiveScore() = %v, want 6", got)
	}
}

func TestRiskFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "mania both high", got: ManiaRisk(85, 9), want: true},
		{name: "mania stress only", got: ManiaRisk(85, 8), want: false},
		{name: "mania energy only", got: ManiaRisk(80, 10), want: false},
		{name: "suicide moderate", got: SuicideRisk(5), want: true},
		{name: "suicide low", got: SuicideRisk(4), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []float64
		wantErr bool
	}{
		{name: "none"},
		{name: "finite", results: []float64{0, -3.5, 1e308}},
		{name: "overflowed recovery", results: []float64{RecoveryScore(1e308, 1e308, 1e308)}, wantErr: true},
		{name: "negative infinity", results: []float64{1, math.Inf(-1)}, wantErr: true},
		{name: "nan", results: []float64{math.NaN()}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Finite(tt.results...)
			if tt.wantErr != errors.Is(err, ErrInvalidInput) {
				t.Errorf("Finite(%v) error = %v, wantErr %v", tt.results, err, tt.wantErr)
			}
		})
	}
}
