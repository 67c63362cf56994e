package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseLoads(t *testing.T) {
	t.Parallel()

	got, err := parseLoads([]string{"300,0", " 450 ", "120"})
	if err != nil {
		t.Fatalf("parseLoads() error = %v", err)
	}
	if diff := cmp.Diff([]float64{300, 0, 450, 120}, got); diff != "" {
		t.Errorf("parseLoads() mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseLoads([]string{"12,abc"}); err == nil {
		t.Error("parseLoads(abc) error = nil, want error")
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := parseDate("")
	if err != nil || !d.IsZero() {
		t.Errorf("parseDate(\"\") = %v, %v, want zero time", d, err)
	}

	d, err = parseDate("2026-03-10")
	if err != nil || !d.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseDate() = %v, %v", d, err)
	}

	if _, err := parseDate("10/03/2026"); err == nil {
		t.Error("parseDate(10/03/2026) error = nil, want error")
	}
}
