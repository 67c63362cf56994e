package metrics

import (
	"errors"
	"net/http"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	labelRoute   = "route"
	labelMethod  = "method"
	labelCode    = "code"
	labelFormula = "formula"
	labelOutcome = "outcome"
	labelResult  = "result"
)

// Formula outcomes.
const (
	OutcomeOK               = "ok"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeInsufficientData = "insufficient_data"
	OutcomeNoData           = "no_data"
	OutcomeError            = "error"
)

// Manager owns the service's collectors. A nil *Manager is valid and
// records nothing, which is how METRICS_ENABLED=false is served.
type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterFormulaEvaluations *prometheus.CounterVec
	CounterAuthAttempts       *prometheus.CounterVec
	CounterRateLimited        prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("synthonia", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of handled requests",
		}, []string{labelRoute, labelMethod, labelCode}),
		CounterHandleRequestPanic: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handle_request_panic_total",
			Help:      "The total number of recovered handler panics",
		}),
		CounterFormulaEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "formula_evaluations_total",
			Help:      "Formula library evaluations by formula and outcome",
		}, []string{labelFormula, labelOutcome}),
		CounterAuthAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "auth_attempts_total",
			Help:      "Sign-up and sign-in attempts by result",
		}, []string{labelResult}),
		CounterRateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the IP rate limiter",
		}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests being served",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{labelRoute, labelMethod}),
	}
}

// InstrumentRoute counts and times h under the route label. Routes are
// labelled at registration so the label set stays bounded.
func (m *Manager) InstrumentRoute(route string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	labels := prometheus.Labels{labelRoute: route}
	return promhttp.InstrumentHandlerDuration(
		m.HistRequestDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.CounterRequests.MustCurryWith(labels), h),
	)
}

// InFlight tracks the number of requests currently being served.
func (m *Manager) InFlight(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return promhttp.InstrumentHandlerInFlight(m.GaugeRequests, next)
}

func (m *Manager) IncPanic() {
	if m == nil {
		return
	}
	m.CounterHandleRequestPanic.Inc()
}

func (m *Manager) IncRateLimited() {
	if m == nil {
		return
	}
	m.CounterRateLimited.Inc()
}

func (m *Manager) ObserveAuth(result string) {
	if m == nil {
		return
	}
	m.CounterAuthAttempts.WithLabelValues(result).Inc()
}

// ObserveFormula records one evaluation of the named formula.
func (m *Manager) ObserveFormula(name string, err error) {
	if m == nil {
		return
	}
	m.CounterFormulaEvaluations.WithLabelValues(name, Outcome(err)).Inc()
}

// Outcome classifies a formula error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, formula.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, formula.ErrInsufficientData):
		return OutcomeInsufficientData
	case errors.Is(err, formula.ErrNoData):
		return OutcomeNoData
	default:
		return OutcomeError
	}
}
