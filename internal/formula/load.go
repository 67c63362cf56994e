package formula

import "math"

// DefaultTRIMPMax is the reference TRIMP that maps to a TSS of 100.
const DefaultTRIMPMax = 600

// TRIMP is the session-RPE training impulse: rpe * duration (minutes).
func TRIMP(rpe, duration float64) float64 {
	return rpe * duration
}

// SessionLoad is Foster's session load. It is the same quantity as TRIMP,
// with the arguments in the order the training forms collect them.
func SessionLoad(duration, rpe float64) float64 {
	return TRIMP(rpe, duration)
}

// TSSFromTRIMP normalises a TRIMP against trimpMax. A non-positive trimpMax
// falls back to DefaultTRIMPMax.
func TSSFromTRIMP(trimp, trimpMax float64) float64 {
	if trimpMax <= 0 {
		trimpMax = DefaultTRIMPMax
	}
	return trimp / trimpMax * 100
}

type Exercise struct {
	Name string
	Sets int
	Reps int
	Load float64
}

// VolumeLoad is the session tonnage: the sum of sets * reps * load.
func VolumeLoad(exercises []Exercise) float64 {
	var total float64
	for _, ex := range exercises {
		total += float64(ex.Sets) * float64(ex.Reps) * ex.Load
	}
	return total
}

type LoadClass string

const (
	LoadExtreme  LoadClass = "extreme"
	LoadModerate LoadClass = "moderate"
	LoadLight    LoadClass = "light"
)

func (c LoadClass) Description() string {
	switch c {
	case LoadExtreme:
		return "Extreme (overreaching risk)"
	case LoadLight:
		return "Light / recovery"
	default:
		return "Moderate"
	}
}

const (
	extremeLoadThreshold = 600
	lightLoadThreshold   = 300
)

// ClassifyInternalLoad bands a session load: above 600 is extreme, below 300
// is light, anything else is moderate.
func ClassifyInternalLoad(load float64) LoadClass {
	switch {
	case load > extremeLoadThreshold:
		return LoadExtreme
	case load < lightLoadThreshold:
		return LoadLight
	default:
		return LoadModerate
	}
}

// Monotony is mean daily load over its population standard deviation.
// It is 0 for fewer than two loads or a flat series.
func Monotony(dailyLoads []float64) float64 {
	if len(dailyLoads) < 2 {
		return 0
	}

	m := mean(dailyLoads)
	var variance float64
	for _, l := range dailyLoads {
		variance += (l - m) * (l - m)
	}
	stdDev := math.Sqrt(variance / float64(len(dailyLoads)))
	if stdDev == 0 {
		return 0
	}
	return m / stdDev
}

// Strain is weekly load scaled by monotony.
func Strain(weeklyLoad, monotony float64) float64 {
	return weeklyLoad * monotony
}

const (
	monotonyThreshold = 2.0
	tsbThreshold      = -30.0
)

// InjuryRisk flags a monotonous block or a deeply negative training stress
// balance.
func InjuryRisk(monotony, tsb float64) bool {
	return monotony > monotonyThreshold || tsb < tsbThreshold
}
