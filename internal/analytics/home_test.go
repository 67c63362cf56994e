package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDailySummary(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 4, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name              string
		mentalScore       float64
		physicalReadiness float64
		want              Summary
	}{
		{
			name:              "nothing notable",
			mentalScore:       40,
			physicalReadiness: 6,
			want:              Summary{Date: "2025-03-04", Status: StatusNormal, Alerts: []string{}, Recommendations: []string{}},
		},
		{
			name:              "mania risk",
			mentalScore:       81,
			physicalReadiness: 6,
			want: Summary{
				Date:            "2025-03-04",
				Status:          StatusAttention,
				Alerts:          []string{AlertManiaRisk},
				Recommendations: []string{RecContactDoctor},
			},
		},
		{
			name:              "mania threshold is exclusive",
			mentalScore:       80,
			physicalReadiness: 8,
			want:              Summary{Date: "2025-03-04", Status: StatusNormal, Alerts: []string{}, Recommendations: []string{}},
		},
		{
			name:              "high readiness",
			physicalReadiness: 9,
			want:              Summary{Date: "2025-03-04", Status: StatusNormal, Alerts: []string{}, Recommendations: []string{RecHighReadiness}},
		},
		{
			name:              "low readiness with mania risk",
			mentalScore:       95,
			physicalReadiness: 3,
			want: Summary{
				Date:            "2025-03-04",
				Status:          StatusAttention,
				Alerts:          []string{AlertManiaRisk},
				Recommendations: []string{RecContactDoctor, RecLowReadiness},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DailySummary(Profile{ID: "u1", Role: RoleSubject}, tt.mentalScore, tt.physicalReadiness, now)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DailySummary() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	t.Parallel()

	subject := Menu(RoleSubject)
	if len(subject) != 4 {
		t.Fatalf("len(Menu(subject)) = %d, want 4", len(subject))
	}

	doctor := Menu(RoleDoctor)
	if len(doctor) != 5 {
		t.Fatalf("len(Menu(doctor)) = %d, want 5", len(doctor))
	}
	if got := doctor[len(doctor)-1].Name; got != "Patients" {
		t.Errorf("last doctor entry = %q, want Patients", got)
	}

	// appending for a doctor must not leak into later calls
	if again := Menu(RoleCoach); len(again) != 4 {
		t.Errorf("len(Menu(coach)) = %d, want 4", len(again))
	}
}
