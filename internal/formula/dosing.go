package formula

import (
	"fmt"
	"math"
)

const (
	DefaultStartingDose = 56.0
	DoseStep            = 28.0
	MaxDose             = 84.0
)

type SpravatoSession struct {
	DoseMg       float64
	Dissociation float64
	MoodAfter    float64
}

type DoseRecommendation string

const (
	DoseReassess  DoseRecommendation = "reassess protocol"
	DoseExcellent DoseRecommendation = "excellent response"
	DoseMaintain  DoseRecommendation = "maintain dose"
)

// EfficacyScore weighs dissociation by next-day mood against the dose:
// dissociation * (mood + 5) / (dose / 10).
func EfficacyScore(doseMg, dissociation, moodAfter float64) (float64, error) {
	if doseMg <= 0 {
		return 0, fmt.Errorf("%w: dose must be positive", ErrInvalidInput)
	}
	score := dissociation * (moodAfter + 5) / (doseMg / 10)
	if err := Finite(score); err != nil {
		return 0, err
	}
	return score, nil
}

// RecommendForEfficacy bands an efficacy score: below 5 needs reassessment,
// above 15 is an excellent response.
func RecommendForEfficacy(efficacy float64) DoseRecommendation {
	switch {
	case efficacy < 5:
		return DoseReassess
	case efficacy > 15:
		return DoseExcellent
	default:
		return DoseMaintain
	}
}

type DosePrediction struct {
	Dose   float64
	Reason string
}

// PredictNextDose is a one-step heuristic over an ascending session history:
// start at 56mg, step up by 28mg (capped at 84mg) after a negative mood
// response, otherwise keep the last dose.
func PredictNextDose(history []SpravatoSession) DosePrediction {
	if len(history) == 0 {
		return DosePrediction{Dose: DefaultStartingDose, Reason: "default starting dose"}
	}

	last := history[len(history)-1]
	if last.MoodAfter < 0 {
		return DosePrediction{
			Dose:   math.Min(MaxDose, last.DoseMg+DoseStep),
			Reason: "low mood improvement",
		}
	}
	return DosePrediction{Dose: last.DoseMg, Reason: "maintaining positive response"}
}

type TrendAnalysis struct {
	Count int
	// Correlation between dissociation and mood; nil when undefined.
	Correlation *float64
	AvgDose     float64
	BestSession SpravatoSession
	BestIndex   int
}

// AnalyzeTrends summarises a session history. The best session is the first
// one with the highest mood response.
func AnalyzeTrends(sessions []SpravatoSession) (TrendAnalysis, error) {
	if len(sessions) == 0 {
		return TrendAnalysis{}, fmt.Errorf("%w: no Spravato sessions recorded", ErrNoData)
	}

	var (
		doses  = make([]float64, len(sessions))
		dissoc = make([]float64, len(sessions))
		moods  = make([]float64, len(sessions))
		best   int
	)
	for i, s := range sessions {
		doses[i] = s.DoseMg
		dissoc[i] = s.Dissociation
		moods[i] = s.MoodAfter
		if s.MoodAfter > sessions[best].MoodAfter {
			best = i
		}
	}

	a := TrendAnalysis{
		Count:       len(sessions),
		AvgDose:     mean(doses),
		BestSession: sessions[best],
		BestIndex:   best,
	}
	if r, ok := Pearson(dissoc, moods); ok {
		a.Correlation = &r
	}
	return a, nil
}
