package handler

import (
	"net/http"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/service/jump"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

type Jump struct {
	tracker jump.Service
	metrics *metrics.Manager
	now     func() time.Time
}

func NewJump(tracker jump.Service, m *metrics.Manager) *Jump {
	return &Jump{tracker: tracker, metrics: m, now: time.Now}
}

type jumpRequest struct {
	JumpHeightCm float64 `json:"jump_height_cm"`
	BodyWeightKg float64 `json:"body_weight_kg"`
	// BaseJumpCm defaults to the analyzer's 40cm when omitted.
	BaseJumpCm *float64 `json:"base_jump_cm"`
}

func (req *jumpRequest) Validate() map[string]string {
	c := validator.Collector{}
	req.check(c)
	return c.Result()
}

func (req *jumpRequest) check(c validator.Collector) {
	c.Check(req.JumpHeightCm >= 0, "jump_height_cm", "must not be negative")
	c.Check(req.BodyWeightKg > 0, "body_weight_kg", "must be positive")
}

type jumpResponse struct {
	Status                  string  `json:"status"`
	PercentChange           float64 `json:"percent_change"`
	LoadPercent             int     `json:"load_percent"`
	Recommendation          string  `json:"recommendation"`
	EstimatedPeakPowerWatts float64 `json:"estimated_peak_power_watts"`
}

func toJump(r formula.JumpReadiness) jumpResponse {
	return jumpResponse{
		Status:                  string(r.Status),
		PercentChange:           round1(r.PercentChange),
		LoadPercent:             r.LoadPercent,
		Recommendation:          r.Recommendation,
		EstimatedPeakPowerWatts: round1(r.EstimatedPeakPower),
	}
}

// HandleAnalysis handles POST /api/tests/jump_analysis.
func (h *Jump) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req jumpRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	baseline := analytics.DefaultBaselineCm
	if req.BaseJumpCm != nil {
		baseline = *req.BaseJumpCm
	}

	res, err := analytics.JumpTestAnalyzer{BaselineCm: baseline}.Analyze(req.JumpHeightCm, req.BodyWeightKg)
	h.metrics.ObserveFormula("jump_analysis", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toJump(res))
}

type recordJumpRequest struct {
	Date string `json:"date"`
	jumpRequest
}

func (req *recordJumpRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(validDate(req.Date), "date", "must be YYYY-MM-DD")
	req.check(c)
	return c.Result()
}

type jumpTestResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	HeightCm      float64 `json:"jump_height_cm"`
	BodyWeightKg  float64 `json:"body_weight_kg"`
	BaselineCm    float64 `json:"base_jump_cm"`
	PercentChange float64 `json:"percent_change"`
	Status        string  `json:"status"`
}

func toJumpTest(j repository.JumpTest) jumpTestResponse {
	return jumpTestResponse{
		ID:            j.ID,
		Date:          j.Date.Format(time.DateOnly),
		HeightCm:      j.HeightCm,
		BodyWeightKg:  j.BodyWeightKg,
		BaselineCm:    round1(j.BaselineCm),
		PercentChange: round1(j.PercentChange),
		Status:        string(j.Status),
	}
}

type recordJumpResponse struct {
	Test      jumpTestResponse `json:"test"`
	Readiness jumpResponse     `json:"readiness"`
}

// HandleRecord handles POST /api/tests/jumps. Without base_jump_cm the
// baseline is the mean of the user's recent jumps.
func (h *Jump) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	var req recordJumpRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date, h.now())
	if err != nil {
		apperr.WriteError(ctx, w, apperr.Validation(map[string]string{"date": "must be YYYY-MM-DD"}))
		return
	}

	test, res, err := h.tracker.Record(ctx, userID, jump.Input{
		Date:         date,
		HeightCm:     req.JumpHeightCm,
		BodyWeightKg: req.BodyWeightKg,
		BaselineCm:   req.BaseJumpCm,
	})
	h.metrics.ObserveFormula("jump_analysis", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "recorded jump test")
	xhttp.WriteCreated(w, recordJumpResponse{Test: toJumpTest(test), Readiness: toJump(res)})
}

// HandleList handles GET /api/tests/jumps?days=.
func (h *Jump) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	days, err := queryDays(r)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	tests, err := h.tracker.List(ctx, userID, days)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	out := make([]jumpTestResponse, len(tests))
	for i, j := range tests {
		out[i] = toJumpTest(j)
	}
	xslog.FromContext(ctx).DebugContext(ctx, "listed jump tests", xslog.Count(len(out)), xslog.Days(days))
	xhttp.WriteOK(w, out)
}
