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
	"github.com/garrettladley/synthonia/internal/service/spravato"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

type Spravato struct {
	tracker spravato.Service
	metrics *metrics.Manager
	now     func() time.Time
}

func NewSpravato(tracker spravato.Service, m *metrics.Manager) *Spravato {
	return &Spravato{tracker: tracker, metrics: m, now: time.Now}
}

type spravatoSession struct {
	DoseMg       float64 `json:"dose_mg"`
	Dissociation float64 `json:"dissociation_level"`
	MoodAfter    float64 `json:"mood_24h_after"`
}

func (s *spravatoSession) Validate() map[string]string {
	c := validator.Collector{}
	s.check(c, "")
	return c.Result()
}

func (s *spravatoSession) check(c validator.Collector, prefix string) {
	c.Check(s.Dissociation >= 0 && s.Dissociation <= 10, prefix+"dissociation_level", "must be between 0 and 10")
	c.Check(s.MoodAfter >= -10 && s.MoodAfter <= 10, prefix+"mood_24h_after", "must be between -10 and 10")
}

func (s spravatoSession) toFormula() formula.SpravatoSession {
	return formula.SpravatoSession{DoseMg: s.DoseMg, Dissociation: s.Dissociation, MoodAfter: s.MoodAfter}
}

func fromFormula(s formula.SpravatoSession) spravatoSession {
	return spravatoSession{DoseMg: s.DoseMg, Dissociation: s.Dissociation, MoodAfter: s.MoodAfter}
}

// spravatoHistory is an ascending list of sessions sent by the caller.
type spravatoHistory []spravatoSession

func (h *spravatoHistory) Validate() map[string]string {
	c := validator.Collector{}
	for i := range *h {
		(*h)[i].check(c, "sessions["+strconv.Itoa(i)+"].")
	}
	return c.Result()
}

func (h spravatoHistory) toFormula() analytics.SpravatoHistory {
	out := make(analytics.SpravatoHistory, len(h))
	for i, s := range h {
		out[i] = s.toFormula()
	}
	return out
}

type analysisResponse struct {
	AvgDose        float64 `json:"avg_dose"`
	EfficacyScore  float64 `json:"efficacy_score"`
	Recommendation string  `json:"recommendation"`
}

func toAnalysis(a analytics.SessionAnalysis) analysisResponse {
	return analysisResponse{
		AvgDose:        a.AvgDose,
		EfficacyScore:  round2(a.Efficacy),
		Recommendation: string(a.Recommendation),
	}
}

type doseResponse struct {
	SuggestedDose float64 `json:"suggested_dose"`
	Reason        string  `json:"reason"`
}

func toDose(p formula.DosePrediction) doseResponse {
	return doseResponse{SuggestedDose: p.Dose, Reason: p.Reason}
}

type trendsResponse struct {
	Count       int             `json:"count"`
	Correlation *float64        `json:"correlation"`
	AvgDose     float64         `json:"avg_dose"`
	BestSession spravatoSession `json:"best_session"`
}

func toTrends(t formula.TrendAnalysis) trendsResponse {
	resp := trendsResponse{
		Count:       t.Count,
		AvgDose:     round2(t.AvgDose),
		BestSession: fromFormula(t.BestSession),
	}
	if t.Correlation != nil {
		r := round2(*t.Correlation)
		resp.Correlation = &r
	}
	return resp
}

// HandleAnalyze handles POST /api/spravato/analyze.
func (h *Spravato) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req spravatoSession
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	a, err := analytics.AnalyzeSession(req.toFormula())
	h.metrics.ObserveFormula("spravato_efficacy", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toAnalysis(a))
}

// HandlePredictNextDose handles POST /api/spravato/predict_next_dose. The
// body is the ascending session history; an empty list is valid.
func (h *Spravato) HandlePredictNextDose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req spravatoHistory
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	h.metrics.ObserveFormula("predict_next_dose", nil)
	xhttp.WriteOK(w, toDose(req.toFormula().NextDose()))
}

// HandleTrends handles POST /api/spravato/trends.
func (h *Spravato) HandleTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req spravatoHistory
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	t, err := req.toFormula().Trends()
	h.metrics.ObserveFormula("spravato_trends", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toTrends(t))
}

type recordSpravatoRequest struct {
	Date string `json:"date"`
	spravatoSession
}

func (req *recordSpravatoRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(validDate(req.Date), "date", "must be YYYY-MM-DD")
	req.check(c, "")
	return c.Result()
}

type storedSpravatoSession struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	spravatoSession
}

func toStoredSpravato(s repository.SpravatoSession) storedSpravatoSession {
	return storedSpravatoSession{
		ID:              s.ID,
		Date:            s.Date.Format(time.DateOnly),
		spravatoSession: fromFormula(s.Formula()),
	}
}

type recordSpravatoResponse struct {
	Session  storedSpravatoSession `json:"session"`
	Analysis analysisResponse      `json:"analysis"`
}

// HandleRecord handles POST /api/spravato/sessions.
func (h *Spravato) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	var req recordSpravatoRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date, h.now())
	if err != nil {
		apperr.WriteError(ctx, w, apperr.Validation(map[string]string{"date": "must be YYYY-MM-DD"}))
		return
	}

	session, analysis, err := h.tracker.Record(ctx, userID, date, req.toFormula())
	h.metrics.ObserveFormula("spravato_efficacy", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "recorded spravato session")
	xhttp.WriteCreated(w, recordSpravatoResponse{
		Session:  toStoredSpravato(session),
		Analysis: toAnalysis(analysis),
	})
}

// HandleSessionTrends handles GET /api/spravato/sessions/trends.
func (h *Spravato) HandleSessionTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	t, err := h.tracker.Trends(ctx, userID)
	h.metrics.ObserveFormula("spravato_trends", err)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toTrends(t))
}

// HandleSessionNextDose handles GET /api/spravato/sessions/next_dose.
func (h *Spravato) HandleSessionNextDose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	p, err := h.tracker.NextDose(ctx, userID)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, toDose(p))
}
