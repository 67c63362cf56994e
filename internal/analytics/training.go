package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
)

type Session struct {
	DurationMinutes float64
	RPE             float64
	Exercises       []formula.Exercise
}

type SessionLoad struct {
	InternalLoad   float64
	VolumeLoad     float64
	Classification formula.LoadClass
}

// CalculateLoad derives the internal (sRPE) and external (tonnage) load of a
// single session.
func CalculateLoad(s Session) SessionLoad {
	internal := formula.SessionLoad(s.DurationMinutes, s.RPE)
	return SessionLoad{
		InternalLoad:   internal,
		VolumeLoad:     formula.VolumeLoad(s.Exercises),
		Classification: formula.ClassifyInternalLoad(internal),
	}
}

// DatedLoad is one persisted session load.
type DatedLoad struct {
	Date time.Time
	Load float64
}

// DailySeries densifies dated loads into one sample per calendar day from the
// earliest load through today, so trailing rest days count as 0. Same-day
// loads are summed and loads dated after today are dropped. Returns nil when
// loads is empty.
func DailySeries(loads []DatedLoad, today time.Time) []float64 {
	if len(loads) == 0 {
		return nil
	}

	last := day(today)
	first := last
	for _, l := range loads {
		if d := day(l.Date); d.Before(first) {
			first = d
		}
	}

	series := make([]float64, daysBetween(first, last)+1)
	for _, l := range loads {
		d := day(l.Date)
		if d.After(last) {
			continue
		}
		series[daysBetween(first, d)] += l.Load
	}
	return series
}

// Readiness is the periodization picture of a daily load series.
// ACWR is nil while fewer than formula.ChronicWindow days are available.
type Readiness struct {
	Days       int
	ACWR       *formula.ACWRResult
	Trend      formula.LoadTrend
	Monotony   float64
	WeeklyLoad float64
	Strain     float64
	InjuryRisk bool
}

// AnalyzeReadiness runs ACWR, ATL/CTL/TSB and weekly monotony over an
// ascending, gap-free daily series.
func AnalyzeReadiness(daily []float64) (Readiness, error) {
	if len(daily) == 0 {
		return Readiness{}, fmt.Errorf("%w: no training sessions recorded", formula.ErrNoData)
	}

	trend, err := formula.Trend(daily)
	if err != nil {
		return Readiness{}, fmt.Errorf("computing load trend: %w", err)
	}

	r := Readiness{Days: len(daily), Trend: trend}

	acwr, err := formula.ACWR(daily)
	switch {
	case err == nil:
		r.ACWR = &acwr
	case !errors.Is(err, formula.ErrInsufficientData):
		return Readiness{}, fmt.Errorf("computing acwr: %w", err)
	}

	week := daily
	if len(week) > formula.AcuteWindow {
		week = week[len(week)-formula.AcuteWindow:]
	}
	for _, l := range week {
		r.WeeklyLoad += l
	}
	r.Monotony = formula.Monotony(week)
	r.Strain = formula.Strain(r.WeeklyLoad, r.Monotony)

	_, _, tsb := trend.Latest()
	r.InjuryRisk = formula.InjuryRisk(r.Monotony, tsb)
	return r, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
