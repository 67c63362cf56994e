package formula

import "fmt"

const (
	AcuteWindow   = 7
	ChronicWindow = 28
)

type RiskLevel string

const (
	RiskHigh       RiskLevel = "high"
	RiskOptimal    RiskLevel = "optimal"
	RiskDetraining RiskLevel = "detraining"
)

func (r RiskLevel) Description() string {
	switch r {
	case RiskHigh:
		return "High injury risk (load spike)"
	case RiskDetraining:
		return "Detraining (take care when returning)"
	default:
		return "Optimal / low risk"
	}
}

type ACWRResult struct {
	Acute   float64
	Chronic float64
	Ratio   float64
	Risk    RiskLevel
}

// ACWR computes the acute:chronic workload ratio of a chronologically
// ascending daily load series. Acute is the mean of the last 7 samples and
// chronic the mean of the last 28; at least 28 samples are required.
func ACWR(loads []float64) (ACWRResult, error) {
	if len(loads) < ChronicWindow {
		return ACWRResult{}, fmt.Errorf("%w: need %d daily loads, got %d", ErrInsufficientData, ChronicWindow, len(loads))
	}

	acute := mean(loads[len(loads)-AcuteWindow:])
	chronic := mean(loads[len(loads)-ChronicWindow:])

	var ratio float64
	if chronic > 0 {
		ratio = acute / chronic
	}

	return ACWRResult{
		Acute:   acute,
		Chronic: chronic,
		Ratio:   ratio,
		Risk:    ClassifyACWR(ratio),
	}, nil
}

// ClassifyACWR bands a workload ratio: above 1.5 is high risk, below 0.8 is
// detraining.
func ClassifyACWR(ratio float64) RiskLevel {
	switch {
	case ratio > 1.5:
		return RiskHigh
	case ratio < 0.8:
		return RiskDetraining
	default:
		return RiskOptimal
	}
}
