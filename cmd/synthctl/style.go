package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/garrettladley/synthonia/internal/formula"
)

var (
	faint = color.New(color.Faint)
	bold  = color.New(color.Bold)
)

func riskColor(r formula.RiskLevel) *color.Color {
	switch r {
	case formula.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case formula.RiskDetraining:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func statusColor(s formula.ReadinessStatus) *color.Color {
	switch s {
	case formula.StatusHighFatigue:
		return color.New(color.FgRed, color.Bold)
	case formula.StatusMildFatigue:
		return color.New(color.FgYellow)
	case formula.StatusPotentiation:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}

// row prints an aligned label/value pair.
func row(label string, format string, args ...any) {
	fmt.Printf("  %s %s\n", faint.Sprintf("%-16s", label), fmt.Sprintf(format, args...))
}

// parseLoads accepts loads as separate arguments or comma separated.
func parseLoads(args []string) ([]float64, error) {
	var loads []float64
	for _, arg := range args {
		for field := range strings.SplitSeq(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid load %q: %w", field, err)
			}
			loads = append(loads, v)
		}
	}
	return loads, nil
}

// parseDate reads a YYYY-MM-DD flag; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}
