package handler

import (
	"net/http"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xhttp"
)

type Home struct {
	now func() time.Time
}

func NewHome() *Home {
	return &Home{now: time.Now}
}

type profileRequest struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

func (p *profileRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(p.ID != "", "id", "is required")
	c.Check(analytics.Role(p.Role).Valid(), "role", "must be one of subject, doctor, coach")
	return c.Result()
}

type summaryResponse struct {
	Date            string   `json:"date"`
	Status          string   `json:"status"`
	Alerts          []string `json:"alerts"`
	Recommendations []string `json:"recommendations"`
}

// HandleSummary handles POST /api/home/summary?mental_score=&physical_readiness=.
func (h *Home) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mental, err := queryFloat(r, "mental_score")
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}
	physical, err := queryFloat(r, "physical_readiness")
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	var req profileRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	profile := analytics.Profile{ID: req.ID, Role: analytics.Role(req.Role), FullName: req.FullName}
	s := analytics.DailySummary(profile, mental, physical, h.now())

	xhttp.WriteOK(w, summaryResponse{
		Date:            s.Date,
		Status:          s.Status,
		Alerts:          s.Alerts,
		Recommendations: s.Recommendations,
	})
}

type menuItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
}

func toMenu(items []analytics.MenuItem) []menuItem {
	out := make([]menuItem, len(items))
	for i, it := range items {
		out[i] = menuItem{Name: it.Name, Path: it.Path, Icon: it.Icon}
	}
	return out
}

// HandleMenu handles GET /api/home/menu?role=. The role defaults to subject.
func (h *Home) HandleMenu(w http.ResponseWriter, r *http.Request) {
	role := analytics.Role(r.URL.Query().Get("role"))
	if role == "" {
		role = analytics.RoleSubject
	}
	if !role.Valid() {
		apperr.WriteError(r.Context(), w, apperr.Validation(map[string]string{"role": "must be one of subject, doctor, coach"}))
		return
	}
	xhttp.WriteOK(w, toMenu(analytics.Menu(role)))
}
