package handler

import (
	"net/http"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/service/overview"
	"github.com/garrettladley/synthonia/internal/xhttp"
)

type Overview struct {
	service overview.Service
}

func NewOverview(service overview.Service) *Overview {
	return &Overview{service: service}
}

type overviewResponse struct {
	Latest    *dailyMetricResponse `json:"latest"`
	Readiness *readinessResponse   `json:"readiness"`
	Spravato  *trendsResponse      `json:"spravato"`
	NextDose  doseResponse         `json:"next_dose"`
}

// HandleGet handles GET /api/overview.
func (h *Overview) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	o, err := h.service.Get(ctx, userID)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	resp := overviewResponse{NextDose: toDose(o.NextDose)}
	if o.Latest != nil {
		m := toDailyMetric(*o.Latest)
		resp.Latest = &m
	}
	if o.Readiness != nil {
		rd := toReadiness(*o.Readiness)
		resp.Readiness = &rd
	}
	if o.Spravato != nil {
		t := toTrends(*o.Spravato)
		resp.Spravato = &t
	}
	xhttp.WriteOK(w, resp)
}
