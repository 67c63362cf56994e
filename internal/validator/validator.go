package validator

import "github.com/garrettladley/synthonia/internal/apperr"

type Validator interface {
	// Validate returns a field name to problem map, or nil when the value is
	// acceptable.
	Validate() map[string]string
}

// Validate reports v's problems as a 422 validation_failed error.
func Validate(v Validator) error {
	if fields := v.Validate(); len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// Collector accumulates field problems for a Validate implementation.
type Collector map[string]string

// Check records msg against field when ok is false. The first problem
// recorded for a field wins.
func (c Collector) Check(ok bool, field, msg string) {
	if ok {
		return
	}
	if _, seen := c[field]; !seen {
		c[field] = msg
	}
}

// Result returns nil when nothing was recorded.
func (c Collector) Result() map[string]string {
	if len(c) == 0 {
		return nil
	}
	return c
}
