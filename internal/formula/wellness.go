package formula

import "fmt"

// RecoveryScore is the mean of three 0-10 self-reported recovery inputs.
// Inputs are not bounds checked.
func RecoveryScore(muscular, mental, sleep float64) float64 {
	return (muscular + mental + sleep) / 3
}

// RecoveryPercent maps a 0-10 recovery score onto 0-100.
func RecoveryPercent(score float64) float64 {
	return score / 10 * 100
}

// EmotionalScore combines positive and negative affect onto a scale centred
// on 5. The result is intentionally not clamped to [0, 10].
func EmotionalScore(wellbeing, motivation, focus, stress, anxiety float64) float64 {
	return ((wellbeing+motivation+focus)-(stress+anxiety))/5 + 5
}

// DailyPain averages per-region pain scores.
func DailyPain(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("%w: pain scores must not be empty", ErrInvalidInput)
	}
	return mean(scores), nil
}

// DASS21Subscore doubles the raw item sum so the short form matches the
// DASS-42 scale.
func DASS21Subscore(items []float64) float64 {
	return 2 * sum(items)
}

// FlowScore rescales a nine-item 1-5 flow questionnaire onto 0-10.
func FlowScore(raw []float64) float64 {
	return (sum(raw) - 9) / 36 * 10
}

// AdditiveScore sums questionnaire answers (PHQ-9, GAD-7 and similar).
func AdditiveScore(answers map[string]float64) float64 {
	var total float64
	for _, v := range answers {
		total += v
	}
	return total
}

// ManiaRisk flags an in-app stress score above 80 combined with energy
// above 8.
func ManiaRisk(stressScore, energyLevel float64) bool {
	return stressScore > 80 && energyLevel > 8
}

// SuicideRisk flags a self-reported risk level of moderate or higher.
func SuicideRisk(riskLevel float64) bool {
	return riskLevel >= 5
}
