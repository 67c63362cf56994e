package formula

import (
	"fmt"
	"math"
)

var (
	// ATLAlpha is the smoothing factor for a 7-day time constant.
	ATLAlpha = 1 - math.Exp(-1.0/7)
	// CTLAlpha is the smoothing factor for a 42-day time constant.
	CTLAlpha = 1 - math.Exp(-1.0/42)
)

// EMA returns the exponential moving average of series, seeded with the
// first sample.
func EMA(series []float64, alpha float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: series must not be empty", ErrInvalidInput)
	}

	ema := make([]float64, len(series))
	ema[0] = series[0]
	for t := 1; t < len(series); t++ {
		ema[t] = alpha*series[t] + (1-alpha)*ema[t-1]
	}
	return ema, nil
}

// ATL is the acute training load ("fatigue") of a daily load series.
func ATL(series []float64) ([]float64, error) {
	return EMA(series, ATLAlpha)
}

// CTL is the chronic training load ("fitness") of a daily load series.
func CTL(series []float64) ([]float64, error) {
	return EMA(series, CTLAlpha)
}

// TSB is the elementwise training stress balance ctl - atl.
func TSB(ctl, atl []float64) ([]float64, error) {
	if len(ctl) != len(atl) {
		return nil, fmt.Errorf("%w: ctl has %d samples, atl has %d", ErrInvalidInput, len(ctl), len(atl))
	}

	tsb := make([]float64, len(ctl))
	for i := range ctl {
		tsb[i] = ctl[i] - atl[i]
	}
	return tsb, nil
}

type LoadTrend struct {
	ATL []float64
	CTL []float64
	TSB []float64
}

// Latest returns the final ATL, CTL and TSB values.
func (t LoadTrend) Latest() (atl, ctl, tsb float64) {
	n := len(t.TSB)
	if n == 0 {
		return 0, 0, 0
	}
	return t.ATL[n-1], t.CTL[n-1], t.TSB[n-1]
}

// Trend computes ATL, CTL and TSB over the same series.
func Trend(series []float64) (LoadTrend, error) {
	atl, err := ATL(series)
	if err != nil {
		return LoadTrend{}, err
	}
	ctl, err := CTL(series)
	if err != nil {
		return LoadTrend{}, err
	}
	tsb, err := TSB(ctl, atl)
	if err != nil {
		return LoadTrend{}, err
	}
	return LoadTrend{ATL: atl, CTL: ctl, TSB: tsb}, nil
}

// FormDescription describes a training stress balance value.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to compete"
	case tsb > 0:
		return "Neutral, good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued, rest needed"
	}
}
