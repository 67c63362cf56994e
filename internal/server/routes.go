package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/server/handler"
	servermw "github.com/garrettladley/synthonia/internal/server/middleware"
	"github.com/garrettladley/synthonia/internal/service/auth"
	"github.com/garrettladley/synthonia/internal/service/jump"
	"github.com/garrettladley/synthonia/internal/service/overview"
	"github.com/garrettladley/synthonia/internal/service/spravato"
	"github.com/garrettladley/synthonia/internal/service/training"
	"github.com/garrettladley/synthonia/internal/service/user"
	"github.com/garrettladley/synthonia/internal/service/wellness"
	"github.com/garrettladley/synthonia/internal/storage"
	"github.com/garrettladley/synthonia/internal/xhttp/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Services struct {
	Auth     auth.Service
	Users    user.Service
	Wellness wellness.Service
	Training training.Service
	Spravato spravato.Service
	Jump     jump.Service
	Overview overview.Service
}

type Options struct {
	Logger      *slog.Logger
	Services    Services
	RateLimiter storage.RateLimiter
	// Metrics and Registry are nil when metrics are disabled.
	Metrics  *metrics.Manager
	Registry *prometheus.Registry
	// MCP serves the streamable MCP transport at /mcp when set.
	MCP         http.Handler
	Health      map[string]handler.Pinger
	CORSOrigins []string
}

type router struct {
	mux     *http.ServeMux
	metrics *metrics.Manager
}

// handle registers h under pattern, labelled with the pattern's path.
func (rt *router) handle(pattern string, h http.Handler, mw ...func(http.Handler) http.Handler) {
	route := pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		route = path
	}
	rt.mux.Handle(pattern, rt.metrics.InstrumentRoute(route, middleware.Chain(h, mw...)))
}

// NewHandler builds the full HTTP surface with its middleware stack.
func NewHandler(opts Options) http.Handler {
	svc := opts.Services
	m := opts.Metrics
	rt := &router{mux: http.NewServeMux(), metrics: m}

	limited := servermw.RateLimit(opts.RateLimiter, m)
	session := servermw.SessionAuth(svc.Auth)

	home := handler.NewHome()
	wellnessH := handler.NewWellness(svc.Wellness, m)
	trainingH := handler.NewTraining(svc.Training, m)
	spravatoH := handler.NewSpravato(svc.Spravato, m)
	jumpH := handler.NewJump(svc.Jump, m)
	assessments := handler.NewAssessments(m)
	authH := handler.NewAuth(svc.Auth, m)
	me := handler.NewMe(svc.Users)
	overviewH := handler.NewOverview(svc.Overview)
	health := handler.NewHealth(opts.Health)

	// stateless formula endpoints
	rt.handle("POST /api/home/summary", http.HandlerFunc(home.HandleSummary), limited)
	rt.handle("GET /api/home/menu", http.HandlerFunc(home.HandleMenu), limited)
	rt.handle("POST /api/spravato/analyze", http.HandlerFunc(spravatoH.HandleAnalyze), limited)
	rt.handle("POST /api/spravato/predict_next_dose", http.HandlerFunc(spravatoH.HandlePredictNextDose), limited)
	rt.handle("POST /api/spravato/trends", http.HandlerFunc(spravatoH.HandleTrends), limited)
	rt.handle("POST /api/training/calculate_load", http.HandlerFunc(trainingH.HandleCalculateLoad), limited)
	rt.handle("POST /api/training/acwr", http.HandlerFunc(trainingH.HandleACWR), limited)
	rt.handle("POST /api/training/load_trend", http.HandlerFunc(trainingH.HandleLoadTrend), limited)
	rt.handle("POST /api/training/monotony", http.HandlerFunc(trainingH.HandleMonotony), limited)
	rt.handle("POST /api/tests/jump_analysis", http.HandlerFunc(jumpH.HandleAnalysis), limited)
	rt.handle("POST /api/wellness/recovery", http.HandlerFunc(wellnessH.HandleRecovery), limited)
	rt.handle("POST /api/wellness/emotional", http.HandlerFunc(wellnessH.HandleEmotional), limited)
	rt.handle("POST /api/wellness/pain", http.HandlerFunc(wellnessH.HandlePain), limited)
	rt.handle("POST /api/assessments/score", http.HandlerFunc(assessments.HandleScore), limited)

	// auth
	rt.handle("POST /auth/signup", http.HandlerFunc(authH.HandleSignUp), limited)
	rt.handle("POST /auth/signin", http.HandlerFunc(authH.HandleSignIn), limited)
	rt.handle("POST /auth/signout", http.HandlerFunc(authH.HandleSignOut), limited, session)
	rt.handle("POST /auth/password/reset", http.HandlerFunc(authH.HandlePasswordReset), limited)
	rt.handle("POST /auth/password/confirm", http.HandlerFunc(authH.HandlePasswordConfirm), limited)

	// stored history, per user
	rt.handle("GET /api/me", http.HandlerFunc(me.HandleGet), limited, session)
	rt.handle("POST /api/metrics/daily", http.HandlerFunc(wellnessH.HandleRecordDaily), limited, session)
	rt.handle("GET /api/metrics/daily", http.HandlerFunc(wellnessH.HandleListDaily), limited, session)
	rt.handle("GET /api/metrics/series", http.HandlerFunc(wellnessH.HandleSeries), limited, session)
	rt.handle("POST /api/training/sessions", http.HandlerFunc(trainingH.HandleRecord), limited, session)
	rt.handle("GET /api/training/readiness", http.HandlerFunc(trainingH.HandleReadiness), limited, session)
	rt.handle("POST /api/spravato/sessions", http.HandlerFunc(spravatoH.HandleRecord), limited, session)
	rt.handle("GET /api/spravato/sessions/trends", http.HandlerFunc(spravatoH.HandleSessionTrends), limited, session)
	rt.handle("GET /api/spravato/sessions/next_dose", http.HandlerFunc(spravatoH.HandleSessionNextDose), limited, session)
	rt.handle("POST /api/tests/jumps", http.HandlerFunc(jumpH.HandleRecord), limited, session)
	rt.handle("GET /api/tests/jumps", http.HandlerFunc(jumpH.HandleList), limited, session)
	rt.handle("GET /api/overview", http.HandlerFunc(overviewH.HandleGet), limited, session)

	rt.handle("GET /health", http.HandlerFunc(health.HandleHealth))
	if opts.Registry != nil {
		rt.mux.Handle("GET /metrics", metrics.Handler(opts.Registry))
	}
	if opts.MCP != nil {
		rt.handle("/mcp", opts.MCP, limited)
	}

	// RequestID and Logger run first so Logging and Recovery see the
	// enriched logger; Recovery sits inside Logging so panics log as 500s.
	return middleware.Chain(rt.mux,
		m.InFlight,
		middleware.RequestID(),
		middleware.ShutdownContext,
		middleware.Logger(opts.Logger),
		middleware.Logging,
		middleware.Recovery(m.IncPanic),
		middleware.SecurityHeaders,
		middleware.CORS(opts.CORSOrigins),
	)
}
