package analytics

import (
	"fmt"

	"github.com/garrettladley/synthonia/internal/formula"
)

// DefaultBaselineCm is used when an athlete has no jump history yet.
const DefaultBaselineCm = 40.0

// JumpTestAnalyzer classifies counter-movement jumps against a fixed
// baseline. The baseline is supplied by the caller and never updated here.
type JumpTestAnalyzer struct {
	BaselineCm float64
}

func NewJumpTestAnalyzer(baselineCm float64) JumpTestAnalyzer {
	if baselineCm == 0 {
		baselineCm = DefaultBaselineCm
	}
	return JumpTestAnalyzer{BaselineCm: baselineCm}
}

func (a JumpTestAnalyzer) Analyze(currentCm, bodyMassKg float64) (formula.JumpReadiness, error) {
	r, err := formula.ClassifyJump(currentCm, a.BaselineCm, bodyMassKg)
	if err != nil {
		return formula.JumpReadiness{}, fmt.Errorf("analyzing jump: %w", err)
	}
	return r, nil
}

// RollingBaseline is the mean of the most recent window jump heights, or
// DefaultBaselineCm when there is no history. heights are oldest first.
func RollingBaseline(heights []float64, window int) float64 {
	if len(heights) == 0 {
		return DefaultBaselineCm
	}
	if window > 0 && len(heights) > window {
		heights = heights[len(heights)-window:]
	}

	var total float64
	for _, h := range heights {
		total += h
	}
	return total / float64(len(heights))
}
