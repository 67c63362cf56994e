package mcp

import (
	"context"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/xslog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func toolError(msg string, err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg + ": " + err.Error()}},
		IsError: true,
	}
}

// observe records a formula evaluation and logs failures.
func (s *Server) observe(ctx context.Context, tool string, err error) {
	s.metrics.ObserveFormula(tool, err)
	if err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "tool failed", xslog.Tool(tool), xslog.Error(err))
	}
}

type RecoveryInput struct {
	Muscular float64 `json:"muscular" jsonschema:"Muscular recovery (0-10)"`
	Mental   float64 `json:"mental" jsonschema:"Mental recovery (0-10)"`
	Sleep    float64 `json:"sleep" jsonschema:"Sleep quality (0-10)"`
}

type RecoveryOutput struct {
	Score   float64 `json:"score"`
	Percent float64 `json:"percent"`
}

func (s *Server) recoveryScore(ctx context.Context, _ *mcp.CallToolRequest, in RecoveryInput) (*mcp.CallToolResult, RecoveryOutput, error) {
	score := formula.RecoveryScore(in.Muscular, in.Mental, in.Sleep)
	err := formula.Finite(score, formula.RecoveryPercent(score))
	s.observe(ctx, "recovery_score", err)
	if err != nil {
		return toolError("Error computing recovery score", err), RecoveryOutput{}, nil
	}
	return nil, RecoveryOutput{
		Score:   formula.Round(score, 2),
		Percent: formula.Round(formula.RecoveryPercent(score), 1),
	}, nil
}

type Exercise struct {
	Name   string  `json:"name,omitempty" jsonschema:"Exercise name"`
	Sets   int     `json:"sets" jsonschema:"Number of sets"`
	Reps   int     `json:"reps" jsonschema:"Repetitions per set"`
	LoadKg float64 `json:"load_kg" jsonschema:"Load per repetition in kg"`
}

type SessionLoadInput struct {
	DurationMinutes float64    `json:"duration_minutes" jsonschema:"Session duration in minutes"`
	RPE             float64    `json:"rpe" jsonschema:"Session rating of perceived exertion (0-10)"`
	Exercises       []Exercise `json:"exercises,omitempty" jsonschema:"Resistance exercises performed"`
}

type SessionLoadOutput struct {
	InternalLoad   float64 `json:"internal_load"`
	VolumeLoadKg   float64 `json:"volume_load_kg"`
	Classification string  `json:"classification"`
	Description    string  `json:"description"`
}

func (s *Server) sessionLoad(ctx context.Context, _ *mcp.CallToolRequest, in SessionLoadInput) (*mcp.CallToolResult, SessionLoadOutput, error) {
	exercises := make([]formula.Exercise, len(in.Exercises))
	for i, ex := range in.Exercises {
		exercises[i] = formula.Exercise{Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps, Load: ex.LoadKg}
	}

	l := analytics.CalculateLoad(analytics.Session{
		DurationMinutes: in.DurationMinutes,
		RPE:             in.RPE,
		Exercises:       exercises,
	})
	s.observe(ctx, "session_load", nil)

	return nil, SessionLoadOutput{
		InternalLoad:   l.InternalLoad,
		VolumeLoadKg:   l.VolumeLoad,
		Classification: string(l.Classification),
		Description:    l.Classification.Description(),
	}, nil
}

type LoadsInput struct {
	Loads []float64 `json:"loads" jsonschema:"Daily training loads, oldest first, one entry per day"`
}

type ACWROutput struct {
	AcuteLoad   float64 `json:"acute_load"`
	ChronicLoad float64 `json:"chronic_load"`
	ACWR        float64 `json:"acwr"`
	RiskLevel   string  `json:"risk_level"`
	Description string  `json:"description"`
}

func (s *Server) acwr(ctx context.Context, _ *mcp.CallToolRequest, in LoadsInput) (*mcp.CallToolResult, ACWROutput, error) {
	a, err := formula.ACWR(in.Loads)
	s.observe(ctx, "acwr", err)
	if err != nil {
		return toolError("Error computing ACWR", err), ACWROutput{}, nil
	}

	return nil, ACWROutput{
		AcuteLoad:   formula.Round(a.Acute, 1),
		ChronicLoad: formula.Round(a.Chronic, 1),
		ACWR:        formula.Round(a.Ratio, 2),
		RiskLevel:   string(a.Risk),
		Description: a.Risk.Description(),
	}, nil
}

type LoadTrendOutput struct {
	ATL  float64 `json:"atl"`
	CTL  float64 `json:"ctl"`
	TSB  float64 `json:"tsb"`
	Form string  `json:"form"`
	Days int     `json:"days"`
}

// loadTrend reports the latest point of the series only; the full series is
// available over HTTP.
func (s *Server) loadTrend(ctx context.Context, _ *mcp.CallToolRequest, in LoadsInput) (*mcp.CallToolResult, LoadTrendOutput, error) {
	t, err := formula.Trend(in.Loads)
	s.observe(ctx, "load_trend", err)
	if err != nil {
		return toolError("Error computing load trend", err), LoadTrendOutput{}, nil
	}

	atl, ctl, tsb := t.Latest()
	return nil, LoadTrendOutput{
		ATL:  formula.Round(atl, 1),
		CTL:  formula.Round(ctl, 1),
		TSB:  formula.Round(tsb, 1),
		Form: formula.FormDescription(tsb),
		Days: len(t.TSB),
	}, nil
}

type JumpInput struct {
	JumpHeightCm float64  `json:"jump_height_cm" jsonschema:"Measured counter-movement jump height in cm"`
	BodyWeightKg float64  `json:"body_weight_kg" jsonschema:"Body mass in kg, used for the peak power estimate"`
	BaseJumpCm   *float64 `json:"base_jump_cm,omitempty" jsonschema:"Baseline jump height in cm (default 40)"`
}

type JumpOutput struct {
	Status                  string  `json:"status"`
	PercentChange           float64 `json:"percent_change"`
	LoadPercent             int     `json:"load_percent"`
	Recommendation          string  `json:"recommendation"`
	EstimatedPeakPowerWatts float64 `json:"estimated_peak_power_watts"`
}

func (s *Server) jumpAnalysis(ctx context.Context, _ *mcp.CallToolRequest, in JumpInput) (*mcp.CallToolResult, JumpOutput, error) {
	baseline := analytics.DefaultBaselineCm
	if in.BaseJumpCm != nil {
		baseline = *in.BaseJumpCm
	}

	r, err := analytics.JumpTestAnalyzer{BaselineCm: baseline}.Analyze(in.JumpHeightCm, in.BodyWeightKg)
	s.observe(ctx, "jump_analysis", err)
	if err != nil {
		return toolError("Error analyzing jump", err), JumpOutput{}, nil
	}

	return nil, JumpOutput{
		Status:                  string(r.Status),
		PercentChange:           formula.Round(r.PercentChange, 1),
		LoadPercent:             r.LoadPercent,
		Recommendation:          r.Recommendation,
		EstimatedPeakPowerWatts: formula.Round(r.EstimatedPeakPower, 1),
	}, nil
}

type SpravatoSession struct {
	DoseMg       float64 `json:"dose_mg" jsonschema:"Administered dose in mg (typically 28, 56 or 84)"`
	Dissociation float64 `json:"dissociation_level" jsonschema:"Dissociation level (0-10)"`
	MoodAfter    float64 `json:"mood_24h_after" jsonschema:"Mood change 24 hours after the session (-10 to 10)"`
}

func (s SpravatoSession) toFormula() formula.SpravatoSession {
	return formula.SpravatoSession{DoseMg: s.DoseMg, Dissociation: s.Dissociation, MoodAfter: s.MoodAfter}
}

type EfficacyOutput struct {
	EfficacyScore  float64 `json:"efficacy_score"`
	Recommendation string  `json:"recommendation"`
}

func (s *Server) spravatoEfficacy(ctx context.Context, _ *mcp.CallToolRequest, in SpravatoSession) (*mcp.CallToolResult, EfficacyOutput, error) {
	a, err := analytics.AnalyzeSession(in.toFormula())
	s.observe(ctx, "spravato_efficacy", err)
	if err != nil {
		return toolError("Error scoring session", err), EfficacyOutput{}, nil
	}

	return nil, EfficacyOutput{
		EfficacyScore:  formula.Round(a.Efficacy, 2),
		Recommendation: string(a.Recommendation),
	}, nil
}

type HistoryInput struct {
	Sessions []SpravatoSession `json:"sessions" jsonschema:"Spravato sessions, oldest first"`
}

func (in HistoryInput) history() analytics.SpravatoHistory {
	h := make(analytics.SpravatoHistory, len(in.Sessions))
	for i, s := range in.Sessions {
		h[i] = s.toFormula()
	}
	return h
}

type NextDoseOutput struct {
	SuggestedDose float64 `json:"suggested_dose"`
	Reason        string  `json:"reason"`
}

func (s *Server) predictNextDose(ctx context.Context, _ *mcp.CallToolRequest, in HistoryInput) (*mcp.CallToolResult, NextDoseOutput, error) {
	p := in.history().NextDose()
	s.observe(ctx, "predict_next_dose", nil)
	return nil, NextDoseOutput{SuggestedDose: p.Dose, Reason: p.Reason}, nil
}

type TrendsOutput struct {
	Count       int             `json:"count"`
	Correlation *float64        `json:"correlation"`
	AvgDose     float64         `json:"avg_dose"`
	BestSession SpravatoSession `json:"best_session"`
}

func (s *Server) spravatoTrends(ctx context.Context, _ *mcp.CallToolRequest, in HistoryInput) (*mcp.CallToolResult, TrendsOutput, error) {
	t, err := in.history().Trends()
	s.observe(ctx, "spravato_trends", err)
	if err != nil {
		return toolError("Error analyzing trends", err), TrendsOutput{}, nil
	}

	out := TrendsOutput{
		Count:   t.Count,
		AvgDose: formula.Round(t.AvgDose, 2),
		BestSession: SpravatoSession{
			DoseMg:       t.BestSession.DoseMg,
			Dissociation: t.BestSession.Dissociation,
			MoodAfter:    t.BestSession.MoodAfter,
		},
	}
	if t.Correlation != nil {
		r := formula.Round(*t.Correlation, 2)
		out.Correlation = &r
	}
	return nil, out, nil
}
