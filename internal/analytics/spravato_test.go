package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/garrettladley/synthonia/internal/formula"
)

func TestAnalyzeSession(t *testing.T) {
	t.Parallel()

	got, err := AnalyzeSession(formula.SpravatoSession{DoseMg: 56, Dissociation: 8, MoodAfter: 4})
	if err != nil {
		t.Fatalf("AnalyzeSession() error = %v", err)
	}
	if got.AvgDose != 56 {
		t.Errorf("AvgDose = %v, want 56", got.AvgDose)
	}
	if math.Abs(got.Efficacy-12.857142857142858) > 1e-9 {
		t.Errorf("Efficacy = %v, want 12.857...", got.Efficacy)
	}
	if got.Recommendation != formula.DoseMaintain {
		t.Errorf("Recommendation = %q, want %q", got.Recommendation, formula.DoseMaintain)
	}

	if _, err := AnalyzeSession(formula.SpravatoSession{}); !errors.Is(err, formula.ErrInvalidInput) {
		t.Errorf("AnalyzeSession(zero dose) error = %v, want ErrInvalidInput", err)
	}
}

func TestSpravatoHistory(t *testing.T) {
	t.Parallel()

	var empty SpravatoHistory
	if got := empty.NextDose(); got.Dose != formula.DefaultStartingDose {
		t.Errorf("NextDose() = %v, want %v", got.Dose, formula.DefaultStartingDose)
	}
	if _, err := empty.Trends(); !errors.Is(err, formula.ErrNoData) {
		t.Errorf("Trends() error = %v, want ErrNoData", err)
	}

	h := SpravatoHistory{{DoseMg: 56, Dissociation: 6, MoodAfter: -2}}
	if got := h.NextDose(); got.Dose != 84 || got.Reason != "low mood improvement" {
		t.Errorf("NextDose() = %+v, want 84 low mood improvement", got)
	}
}
