package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/service/wellness"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

type Wellness struct {
	journal wellness.Service
	metrics *metrics.Manager
	now     func() time.Time
}

func NewWellness(journal wellness.Service, m *metrics.Manager) *Wellness {
	return &Wellness{journal: journal, metrics: m, now: time.Now}
}

type recoveryRequest struct {
	Muscular float64 `json:"muscular"`
	Mental   float64 `json:"mental"`
	Sleep    float64 `json:"sleep"`
}

// Recovery inputs are 0-10 self reports but are not bounds checked.
func (*recoveryRequest) Validate() map[string]string { return nil }

type recoveryResponse struct {
	Score   float64 `json:"score"`
	Percent float64 `json:"percent"`
}

// HandleRecovery handles POST /api/wellness/recovery.
func (h *Wellness) HandleRecovery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recoveryRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	score := formula.RecoveryScore(req.Muscular, req.Mental, req.Sleep)
	err := formula.Finite(score, formula.RecoveryPercent(score))
	h.metrics.ObserveFormula("recovery_score", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, recoveryResponse{
		Score:   round2(score),
		Percent: round1(formula.RecoveryPercent(score)),
	})
}

type emotionalRequest struct {
	Wellbeing  float64 `json:"wellbeing"`
	Motivation float64 `json:"motivation"`
	Focus      float64 `json:"focus"`
	Stress     float64 `json:"stress"`
	Anxiety    float64 `json:"anxiety"`
}

func (*emotionalRequest) Validate() map[string]string { return nil }

type scoreResponse struct {
	Score float64 `json:"score"`
}

// HandleEmotional handles POST /api/wellness/emotional. The score is not
// clamped.
func (h *Wellness) HandleEmotional(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req emotionalRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	score := formula.EmotionalScore(req.Wellbeing, req.Motivation, req.Focus, req.Stress, req.Anxiety)
	err := formula.Finite(score)
	h.metrics.ObserveFormula("emotional_score", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	xhttp.WriteOK(w, scoreResponse{Score: round2(score)})
}

type painRequest struct {
	Scores []float64 `json:"scores"`
}

func (req *painRequest) Validate() map[string]string {
	c := validator.Collector{}
	for _, s := range req.Scores {
		c.Check(s >= 0, "scores", "must not contain negative scores")
	}
	return c.Result()
}

type painResponse struct {
	Pain float64 `json:"pain"`
}

// HandlePain handles POST /api/wellness/pain. An empty list is invalid
// input.
func (h *Wellness) HandlePain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req painRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	pain, err := formula.DailyPain(req.Scores)
	h.metrics.ObserveFormula("daily_pain", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, painResponse{Pain: round2(pain)})
}

type dailyMetricRequest struct {
	Date            string    `json:"date"`
	Sleep           float64   `json:"sleep"`
	Energy          float64   `json:"energy"`
	Stress          float64   `json:"stress"`
	Mood            float64   `json:"mood"`
	PainScores      []float64 `json:"pain_scores"`
	RPE             float64   `json:"rpe"`
	DurationMinutes float64   `json:"duration_minutes"`
}

func (req *dailyMetricRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(validDate(req.Date), "date", "must be YYYY-MM-DD")
	c.Check(req.Sleep >= 0 && req.Sleep <= 24, "sleep", "must be between 0 and 24 hours")
	c.Check(req.Energy >= 0, "energy", "must not be negative")
	c.Check(req.Stress >= 0, "stress", "must not be negative")
	c.Check(req.RPE >= 0 && req.RPE <= 10, "rpe", "must be between 0 and 10")
	c.Check(req.DurationMinutes >= 0, "duration_minutes", "must not be negative")
	for _, s := range req.PainScores {
		c.Check(s >= 0, "pain_scores", "must not contain negative scores")
	}
	return c.Result()
}

type dailyMetricResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Sleep           float64 `json:"sleep"`
	Energy          float64 `json:"energy"`
	Stress          float64 `json:"stress"`
	Mood            float64 `json:"mood"`
	Pain            float64 `json:"pain"`
	RPE             float64 `json:"rpe"`
	DurationMinutes float64 `json:"duration_minutes"`
}

func toDailyMetric(m repository.DailyMetric) dailyMetricResponse {
	return dailyMetricResponse{
		ID:              m.ID,
		Date:            m.Date.Format(time.DateOnly),
		Sleep:           m.Sleep,
		Energy:          m.Energy,
		Stress:          m.Stress,
		Mood:            m.Mood,
		Pain:            round2(m.Pain),
		RPE:             m.RPE,
		DurationMinutes: m.DurationMinutes,
	}
}

// HandleRecordDaily handles POST /api/metrics/daily. Daily metrics are
// immutable, so a second entry for the same date is a conflict.
func (h *Wellness) HandleRecordDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	var req dailyMetricRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date, h.now())
	if err != nil {
		apperr.WriteError(ctx, w, apperr.Validation(map[string]string{"date": "must be YYYY-MM-DD"}))
		return
	}

	m, err := h.journal.Record(ctx, userID, wellness.DailyInput{
		Date:       date,
		Sleep:      req.Sleep,
		Energy:     req.Energy,
		Stress:     req.Stress,
		Mood:       req.Mood,
		PainScores: req.PainScores,
		RPE:        req.RPE,
		Duration:   req.DurationMinutes,
	})
	if err != nil {
		if errors.Is(err, wellness.ErrDuplicateDay) {
			apperr.WriteError(ctx, w, apperr.Conflict("conflict", "daily metrics already recorded for "+date.Format(time.DateOnly)))
			return
		}
		apperr.WriteError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "recorded daily metric")
	xhttp.WriteCreated(w, toDailyMetric(m))
}

// HandleListDaily handles GET /api/metrics/daily?days=.
func (h *Wellness) HandleListDaily(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.journal.List(ctx, userID, days)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	out := make([]dailyMetricResponse, len(list))
	for i, m := range list {
		out[i] = toDailyMetric(m)
	}
	xhttp.WriteOK(w, out)
}

type seriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type seriesResponse struct {
	Column string        `json:"column"`
	Points []seriesPoint `json:"points"`
}

// HandleSeries handles GET /api/metrics/series?column=&days=.
func (h *Wellness) HandleSeries(w http.ResponseWriter, r *http.Request) {
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
	column := repository.MetricColumn(r.URL.Query().Get("column"))

	points, err := h.journal.Series(ctx, userID, column, days)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	out := seriesResponse{Column: string(column), Points: make([]seriesPoint, len(points))}
	for i, p := range points {
		out.Points[i] = seriesPoint{Date: p.Date.Format(time.DateOnly), Value: p.Value}
	}
	xslog.FromContext(ctx).DebugContext(ctx, "loaded metric series",
		xslog.Column(string(column)),
		xslog.Count(len(points)),
	)
	xhttp.WriteOK(w, out)
}
