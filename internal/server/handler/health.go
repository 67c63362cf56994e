package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/synthonia/internal/version"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool and storage.Backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	deps map[string]Pinger
}

func NewHealth(deps map[string]Pinger) *Health {
	return &Health{deps: deps}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HandleHealth handles GET /health. Any failing dependency turns the
// response into a 503.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Version: version.Get()}
	status := http.StatusOK
	if len(h.deps) > 0 {
		resp.Checks = make(map[string]string, len(h.deps))
	}
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			xslog.FromContext(ctx).WarnContext(ctx, "health check failed",
				xslog.Dependency(name),
				xslog.Error(err),
			)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	xhttp.WriteJSON(w, status, resp)
}
