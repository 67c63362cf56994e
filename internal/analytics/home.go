package analytics

import "time"

type Role string

const (
	RoleSubject Role = "subject"
	RoleDoctor  Role = "doctor"
	RoleCoach   Role = "coach"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSubject, RoleDoctor, RoleCoach:
		return true
	default:
		return false
	}
}

type Profile struct {
	ID       string
	Role     Role
	FullName string
}

const (
	StatusNormal    = "Normal"
	StatusAttention = "Attention"
)

const (
	AlertManiaRisk   = "High risk of mania detected"
	RecContactDoctor = "Contact your doctor immediately."
	RecHighReadiness = "High physical readiness, a good day for a heavy load."
	RecLowReadiness  = "Body is fatigued, consider active rest."
)

const (
	maniaScoreThreshold    = 80
	highReadinessThreshold = 8
	lowReadinessThreshold  = 4
)

type Summary struct {
	Date            string
	Status          string
	Alerts          []string
	Recommendations []string
}

// DailySummary builds the home dashboard summary. mentalScore is the in-app
// 0-100 stress score and physicalReadiness a 0-10 self-report.
func DailySummary(_ Profile, mentalScore, physicalReadiness float64, now time.Time) Summary {
	s := Summary{
		Date:            now.Format(time.DateOnly),
		Status:          StatusNormal,
		Alerts:          []string{},
		Recommendations: []string{},
	}

	if mentalScore > maniaScoreThreshold {
		s.Status = StatusAttention
		s.Alerts = append(s.Alerts, AlertManiaRisk)
		s.Recommendations = append(s.Recommendations, RecContactDoctor)
	}

	switch {
	case physicalReadiness > highReadinessThreshold:
		s.Recommendations = append(s.Recommendations, RecHighReadiness)
	case physicalReadiness < lowReadinessThreshold:
		s.Recommendations = append(s.Recommendations, RecLowReadiness)
	}
	return s
}

type MenuItem struct {
	Name string
	Path string
	Icon string
}

var baseMenu = []MenuItem{
	{Name: "Home", Path: "/dashboard", Icon: "home"},
	{Name: "Spravato", Path: "/spravato/new", Icon: "syringe"},
	{Name: "Assessment", Path: "/assessment", Icon: "activity"},
	{Name: "Training", Path: "/training/new", Icon: "dumbbell"},
}

// Menu returns the navigation entries for role. Doctors also get Patients.
func Menu(role Role) []MenuItem {
	menu := make([]MenuItem, len(baseMenu), len(baseMenu)+1)
	copy(menu, baseMenu)
	if role == RoleDoctor {
		menu = append(menu, MenuItem{Name: "Patients", Path: "/patients", Icon: "users"})
	}
	return menu
}
