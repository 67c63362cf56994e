package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/service/training"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

type Training struct {
	tracker training.Service
	metrics *metrics.Manager
	now     func() time.Time
}

func NewTraining(tracker training.Service, m *metrics.Manager) *Training {
	return &Training{tracker: tracker, metrics: m, now: time.Now}
}

type exercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	LoadKg float64 `json:"load_kg"`
}

type sessionRequest struct {
	DurationMinutes float64    `json:"duration_minutes"`
	RPE             float64    `json:"rpe"`
	Exercises       []exercise `json:"exercises"`
}

func (s *sessionRequest) Validate() map[string]string {
	c := validator.Collector{}
	s.check(c)
	return c.Result()
}

func (s *sessionRequest) check(c validator.Collector) {
	c.Check(s.DurationMinutes >= 0, "duration_minutes", "must not be negative")
	c.Check(s.RPE >= 0 && s.RPE <= 10, "rpe", "must be between 0 and 10")
	for i, ex := range s.Exercises {
		prefix := "exercises[" + strconv.Itoa(i) + "]."
		c.Check(ex.Sets >= 0, prefix+"sets", "must not be negative")
		c.Check(ex.Reps >= 0, prefix+"reps", "must not be negative")
		c.Check(ex.LoadKg >= 0, prefix+"load_kg", "must not be negative")
	}
}

func (s sessionRequest) session() analytics.Session {
	exercises := make([]formula.Exercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		exercises[i] = formula.Exercise{Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps, Load: ex.LoadKg}
	}
	return analytics.Session{DurationMinutes: s.DurationMinutes, RPE: s.RPE, Exercises: exercises}
}

type loadResponse struct {
	InternalLoad   float64 `json:"internal_load"`
	VolumeLoadKg   float64 `json:"volume_load_kg"`
	Classification string  `json:"classification"`
	Description    string  `json:"description"`
}

// HandleCalculateLoad handles POST /api/training/calculate_load.
func (h *Training) HandleCalculateLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sessionRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	l := analytics.CalculateLoad(req.session())
	h.metrics.ObserveFormula("session_load", nil)

	xhttp.WriteOK(w, loadResponse{
		InternalLoad:   l.InternalLoad,
		VolumeLoadKg:   l.VolumeLoad,
		Classification: string(l.Classification),
		Description:    l.Classification.Description(),
	})
}

// loadSeries is a chronologically ascending list of daily loads.
type loadSeries []float64

func (s *loadSeries) Validate() map[string]string {
	c := validator.Collector{}
	for _, l := range *s {
		c.Check(l >= 0, "loads", "must not contain negative loads")
	}
	return c.Result()
}

type acwrResponse struct {
	AcuteLoad   float64 `json:"acute_load"`
	ChronicLoad float64 `json:"chronic_load"`
	ACWR        float64 `json:"acwr"`
	RiskLevel   string  `json:"risk_level"`
	Description string  `json:"description"`
}

func toACWR(a formula.ACWRResult) acwrResponse {
	return acwrResponse{
		AcuteLoad:   round1(a.Acute),
		ChronicLoad: round1(a.Chronic),
		ACWR:        round2(a.Ratio),
		RiskLevel:   string(a.Risk),
		Description: a.Risk.Description(),
	}
}

// HandleACWR handles POST /api/training/acwr. The body is a bare array of
// at least 28 daily loads.
func (h *Training) HandleACWR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loadSeries
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	a, err := formula.ACWR(req)
	h.metrics.ObserveFormula("acwr", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toACWR(a))
}

type loadTrendRequest struct {
	Loads loadSeries `json:"loads"`
}

func (req *loadTrendRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(len(req.Loads) > 0, "loads", "must not be empty")
	for _, l := range req.Loads {
		c.Check(l >= 0, "loads", "must not contain negative loads")
	}
	return c.Result()
}

type loadTrendResponse struct {
	ATL  []float64 `json:"atl"`
	CTL  []float64 `json:"ctl"`
	TSB  []float64 `json:"tsb"`
	Form string    `json:"form"`
}

func toLoadTrend(t formula.LoadTrend) loadTrendResponse {
	_, _, tsb := t.Latest()
	return loadTrendResponse{
		ATL:  roundAll(t.ATL, 1),
		CTL:  roundAll(t.CTL, 1),
		TSB:  roundAll(t.TSB, 1),
		Form: formula.FormDescription(tsb),
	}
}

// HandleLoadTrend handles POST /api/training/load_trend.
func (h *Training) HandleLoadTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loadTrendRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	t, err := formula.Trend(req.Loads)
	h.metrics.ObserveFormula("load_trend", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toLoadTrend(t))
}

type monotonyRequest struct {
	DailyLoads []float64 `json:"daily_loads"`
	// TSB feeds the injury risk flag; omitted means neutral form.
	TSB float64 `json:"tsb"`
}

func (req *monotonyRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(len(req.DailyLoads) > 0, "daily_loads", "must not be empty")
	for _, l := range req.DailyLoads {
		c.Check(l >= 0, "daily_loads", "must not contain negative loads")
	}
	return c.Result()
}

type monotonyResponse struct {
	WeeklyLoad float64 `json:"weekly_load"`
	Monotony   float64 `json:"monotony"`
	Strain     float64 `json:"strain"`
	InjuryRisk bool    `json:"injury_risk"`
}

// HandleMonotony handles POST /api/training/monotony.
func (h *Training) HandleMonotony(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req monotonyRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	var weekly float64
	for _, l := range req.DailyLoads {
		weekly += l
	}
	monotony := formula.Monotony(req.DailyLoads)
	h.metrics.ObserveFormula("monotony", nil)

	xhttp.WriteOK(w, monotonyResponse{
		WeeklyLoad: weekly,
		Monotony:   round2(monotony),
		Strain:     round1(formula.Strain(weekly, monotony)),
		InjuryRisk: formula.InjuryRisk(monotony, req.TSB),
	})
}

type recordTrainingRequest struct {
	Date string `json:"date"`
	sessionRequest
}

func (req *recordTrainingRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(validDate(req.Date), "date", "must be YYYY-MM-DD")
	req.check(c)
	return c.Result()
}

type trainingSessionResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	DurationMinutes float64 `json:"duration_minutes"`
	RPE             float64 `json:"rpe"`
	InternalLoad    float64 `json:"internal_load"`
	VolumeLoadKg    float64 `json:"volume_load_kg"`
	Classification  string  `json:"classification"`
}

func toTrainingSession(s repository.TrainingSession) trainingSessionResponse {
	return trainingSessionResponse{
		ID:              s.ID,
		Date:            s.Date.Format(time.DateOnly),
		DurationMinutes: s.DurationMinutes,
		RPE:             s.RPE,
		InternalLoad:    s.InternalLoad,
		VolumeLoadKg:    s.VolumeLoad,
		Classification:  string(s.Classification),
	}
}

// HandleRecord handles POST /api/training/sessions.
func (h *Training) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	var req recordTrainingRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date, h.now())
	if err != nil {
		apperr.WriteError(ctx, w, apperr.Validation(map[string]string{"date": "must be YYYY-MM-DD"}))
		return
	}

	s, err := h.tracker.Record(ctx, userID, date, req.session())
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "recorded training session")
	xhttp.WriteCreated(w, toTrainingSession(s))
}

type readinessResponse struct {
	Days       int           `json:"days"`
	ACWR       *acwrResponse `json:"acwr"`
	ATL        float64       `json:"atl"`
	CTL        float64       `json:"ctl"`
	TSB        float64       `json:"tsb"`
	Form       string        `json:"form"`
	WeeklyLoad float64       `json:"weekly_load"`
	Monotony   float64       `json:"monotony"`
	Strain     float64       `json:"strain"`
	InjuryRisk bool          `json:"injury_risk"`
}

func toReadiness(rd analytics.Readiness) readinessResponse {
	atl, ctl, tsb := rd.Trend.Latest()
	resp := readinessResponse{
		Days:       rd.Days,
		ATL:        round1(atl),
		CTL:        round1(ctl),
		TSB:        round1(tsb),
		Form:       formula.FormDescription(tsb),
		WeeklyLoad: rd.WeeklyLoad,
		Monotony:   round2(rd.Monotony),
		Strain:     round1(rd.Strain),
		InjuryRisk: rd.InjuryRisk,
	}
	if rd.ACWR != nil {
		a := toACWR(*rd.ACWR)
		resp.ACWR = &a
	}
	return resp
}

// HandleReadiness handles GET /api/training/readiness?days=.
func (h *Training) HandleReadiness(w http.ResponseWriter, r *http.Request) {
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

	rd, err := h.tracker.Readiness(ctx, userID, days)
	h.metrics.ObserveFormula("readiness", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toReadiness(rd))
}
