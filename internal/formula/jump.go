package formula

import "fmt"

type ReadinessStatus string

const (
	StatusHighFatigue  ReadinessStatus = "High Fatigue"
	StatusMildFatigue  ReadinessStatus = "Mild Fatigue"
	StatusNormal       ReadinessStatus = "Normal"
	StatusPotentiation ReadinessStatus = "Potentiation"
)

type JumpReadiness struct {
	PercentChange      float64
	Status             ReadinessStatus
	LoadPercent        int
	Recommendation     string
	EstimatedPeakPower float64
}

// ClassifyJump compares a counter-movement jump against the athlete's
// rolling baseline and maps the change onto a readiness band.
//
//	< -10%        High Fatigue  80%
//	[-10%, -5%)   Mild Fatigue  90%
//	[-5%, +5%]    Normal        100%
//	> +5%         Potentiation  110%
//
// Both baselineCm and bodyMassKg must be positive.
func ClassifyJump(currentCm, baselineCm, bodyMassKg float64) (JumpReadiness, error) {
	if baselineCm <= 0 {
		return JumpReadiness{}, fmt.Errorf("%w: baseline jump height must be positive", ErrInvalidInput)
	}
	if bodyMassKg <= 0 {
		return JumpReadiness{}, fmt.Errorf("%w: body mass must be positive", ErrInvalidInput)
	}

	pc := (currentCm - baselineCm) / baselineCm * 100

	r := JumpReadiness{
		PercentChange:  pc,
		Status:         StatusNormal,
		LoadPercent:    100,
		Recommendation: "Train as planned (100%)",
	}

	switch {
	case pc < -10:
		r.Status = StatusHighFatigue
		r.LoadPercent = 80
		r.Recommendation = "Reduce volume/intensity by 20-30% or take a rest day"
	case pc < -5:
		r.Status = StatusMildFatigue
		r.LoadPercent = 90
		r.Recommendation = "Reduce load by about 10% (autoregulation)"
	case pc > 5:
		r.Status = StatusPotentiation
		r.LoadPercent = 110
		r.Recommendation = "Increase intensity (105-110%)"
	}

	r.EstimatedPeakPower = PeakPower(currentCm, bodyMassKg)
	return r, nil
}

// PeakPower estimates peak power in watts from jump height and body mass
// using the Sayers regression.
func PeakPower(jumpCm, bodyMassKg float64) float64 {
	return 60.7*jumpCm + 45.3*bodyMassKg - 2055
}
