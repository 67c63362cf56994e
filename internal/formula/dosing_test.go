package formula

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEfficacyScore(t *testing.T) {
	t.Parallel()

	got, err := EfficacyScore(56, 8, 4)
	if err != nil {
		t.Fatalf("EfficacyScore() error = %v", err)
	}
	if want := 8 * 9 / 5.6; math.Abs(got-want) > 1e-9 {
		t.Errorf("EfficacyScore() = %v, want %v", got, want)
	}
	if rec := RecommendForEfficacy(got); rec != DoseMaintain {
		t.Errorf("RecommendForEfficacy(%v) = %q, want %q", got, rec, DoseMaintain)
	}
	if got := Round(got, 2); got != 12.86 {
		t.Errorf("Round(efficacy, 2) = %v, want 12.86", got)
	}
}

func TestEfficacyScoreRejectsDose(t *testing.T) {
	t.Parallel()

	for _, dose := range []float64{0, -28, math.SmallestNonzeroFloat64} {
		if _, err := EfficacyScore(dose, 8, 4); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("EfficacyScore(dose %v) error = %v, want ErrInvalidInput", dose, err)
		}
	}
}

func TestRecommendForEfficacy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		efficacy float64
		want     DoseRecommendation
	}{
		{efficacy: 4.99, want: DoseReassess},
		{efficacy: 5, want: DoseMaintain},
		{efficacy: 15, want: DoseMaintain},
		{efficacy: 15.01, want: DoseExcellent},
	}
	for _, tt := range tests {
		if got := RecommendForEfficacy(tt.efficacy); got != tt.want {
			t.Errorf("RecommendForEfficacy(%v) = %q, want %q", tt.efficacy, got, tt.want)
		}
	}
}

func TestPredictNextDose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history []SpravatoSession
		want    DosePrediction
	}{
		{
			name: "empty history",
			want: DosePrediction{Dose: 56, Reason: "default starting dose"},
		},
		{
			name:    "negative mood steps up",
			history: []SpravatoSession{{DoseMg: 56, MoodAfter: -2}},
			want:    DosePrediction{Dose: 84, Reason: "low mood improvement"},
		},
		{
			name:    "step up is capped",
			history: []SpravatoSession{{DoseMg: 84, MoodAfter: -1}},
			want:    DosePrediction{Dose: 84, Reason: "low mood improvement"},
		},
		{
			name:    "positive mood keeps dose",
			history: []SpravatoSession{{DoseMg: 84, MoodAfter: -3}, {DoseMg: 56, MoodAfter: 2}},
			want:    DosePrediction{Dose: 56, Reason: "maintaining positive response"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, PredictNextDose(tt.history)); diff != "" {
				t.Errorf("PredictNextDose() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeTrends(t *testing.T) {
	t.Parallel()

	sessions := []SpravatoSession{
		{DoseMg: 56, Dissociation: 8, MoodAfter: 4},
		{DoseMg: 56, Dissociation: 4, MoodAfter: 1},
		{DoseMg: 84, Dissociation: 9, MoodAfter: 5},
	}

	got, err := AnalyzeTrends(sessions)
	if err != nil {
		t.Fatalf("AnalyzeTrends() error = %v", err)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}
	if !approxEqual(got.AvgDose, 196.0/3) {
		t.Errorf("AvgDose = %v, want %v", got.AvgDose, 196.0/3)
	}
	if got.BestIndex != 2 || got.BestSession != sessions[2] {
		t.Errorf("BestSession = %+v (index %d), want %+v", got.BestSession, got.BestIndex, sessions[2])
	}
	if got.Correlation == nil || *got.Correlation < 0.99 {
		t.Errorf("Correlation = %v, want close to 1", got.Correlation)
	}
}

func TestAnalyzeTrendsNoData(t *testing.T) {
	t.Parallel()

	if _, err := AnalyzeTrends(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("AnalyzeTrends(nil) error = %v, want ErrNoData", err)
	}
}

func TestAnalyzeTrendsSingleSession(t *testing.T) {
	t.Parallel()

	got, err := AnalyzeTrends([]SpravatoSession{{DoseMg: 56, Dissociation: 5, MoodAfter: 2}})
	if err != nil {
		t.Fatalf("AnalyzeTrends() error = %v", err)
	}
	if got.Correlation != nil {
		t.Errorf("Correlation = %v, want nil for a single session", *got.Correlation)
	}
}

func TestPearson(t *testing.T) {
	t.Parallel()

	r, ok := Pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	if !ok || !approxEqual(r, -1) {
		t.Errorf("Pearson() = %v, %v, want -1, true", r, ok)
	}
	if _, ok := Pearson([]float64{1, 1, 1}, []float64{1, 2, 3}); ok {
		t.Error("Pearson(zero variance) ok = true, want false")
	}
	if _, ok := Pearson([]float64{1, 2}, []float64{1}); ok {
		t.Error("Pearson(mismatched) ok = true, want false")
	}
}
