package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xcontext"
	"github.com/garrettladley/synthonia/internal/xhttp"
)

const (
	defaultDays = 30
	maxDays     = 365
)

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v validator.Validator) error {
	if err := xhttp.DecodeJSON(w, r, v); err != nil {
		return apperr.BadRequest("invalid_request", "invalid JSON body").WithCause(err)
	}
	return validator.Validate(v)
}

func requireUser(ctx context.Context) (string, error) {
	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		return "", apperr.Unauthorized("unauthorized", "missing user context")
	}
	return userID, nil
}

// queryDays reads ?days=, defaulting to defaultDays and capped at maxDays.
func queryDays(r *http.Request) (int, error) {
	s := r.URL.Query().Get("days")
	if s == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 || days > maxDays {
		return 0, apperr.Validation(map[string]string{"days": "must be an integer between 1 and 365"})
	}
	return days, nil
}

// queryFloat reads an optional numeric query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.Validation(map[string]string{name: "must be a number"})
	}
	return v, nil
}

// parseDate accepts YYYY-MM-DD and defaults to today (UTC) when empty.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(time.DateOnly, s)
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func round1(x float64) float64 { return formula.Round(x, 1) }

func round2(x float64) float64 { return formula.Round(x, 2) }

func roundAll(xs []float64, places int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = formula.Round(x, places)
	}
	return out
}
