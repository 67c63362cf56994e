package analytics

import (
	"fmt"

	"github.com/garrettladley/synthonia/internal/formula"
)

type SessionAnalysis struct {
	AvgDose        float64
	Efficacy       float64
	Recommendation formula.DoseRecommendation
}

// AnalyzeSession scores a single Spravato session. AvgDose is the session
// dose itself.
func AnalyzeSession(s formula.SpravatoSession) (SessionAnalysis, error) {
	eff, err := formula.EfficacyScore(s.DoseMg, s.Dissociation, s.MoodAfter)
	if err != nil {
		return SessionAnalysis{}, fmt.Errorf("scoring session: %w", err)
	}
	return SessionAnalysis{
		AvgDose:        s.DoseMg,
		Efficacy:       eff,
		Recommendation: formula.RecommendForEfficacy(eff),
	}, nil
}

// SpravatoHistory is an ascending list of sessions owned by the caller.
type SpravatoHistory []formula.SpravatoSession

func (h SpravatoHistory) NextDose() formula.DosePrediction {
	return formula.PredictNextDose(h)
}

func (h SpravatoHistory) Trends() (formula.TrendAnalysis, error) {
	return formula.AnalyzeTrends(h)
}
