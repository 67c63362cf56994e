package formula

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned when an argument would make a formula
	// undefined (empty series, non-positive denominator, misaligned series).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData is returned when a series is shorter than the
	// window a formula needs.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNoData is returned by history queries over an empty history.
	ErrNoData = errors.New("no data")
)

// Finite returns ErrInvalidInput when any result overflowed to ±Inf or is
// NaN, which JSON cannot represent.
func Finite(results ...float64) error {
	for _, r := range results {
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return fmt.Errorf("%w: result is not a finite number", ErrInvalidInput)
		}
	}
	return nil
}
