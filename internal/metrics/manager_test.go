package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentRoute(t *testing.T) {
	t.Parallel()

	m, _ := NewTestManager()
	h := m.InstrumentRoute("/api/training/acwr", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	for range 3 {
		req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/api/training/acwr", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.CounterRequests.WithLabelValues("/api/training/acwr", "post", "422"))
	if got != 3 {
		t.Errorf("requests_total = %v, want 3", got)
	}
}

func TestObserveFormula(t *testing.T) {
	t.Parallel()

	m, _ := NewTestManager()
	m.ObserveFormula("acwr", nil)
	m.ObserveFormula("acwr", fmt.Errorf("wrapped: %w", formula.ErrInsufficientData))
	m.ObserveFormula("acwr", fmt.Errorf("wrapped: %w", formula.ErrInsufficientData))

	if got := testutil.ToFloat64(m.CounterFormulaEvaluations.WithLabelValues("acwr", OutcomeOK)); got != 1 {
		t.Errorf("ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CounterFormulaEvaluations.WithLabelValues("acwr", OutcomeInsufficientData)); got != 2 {
		t.Errorf("insufficient_data = %v, want 2", got)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: OutcomeOK},
		{err: formula.ErrInvalidInput, want: OutcomeInvalidInput},
		{err: fmt.Errorf("x: %w", formula.ErrNoData), want: OutcomeNoData},
		{err: errors.New("boom"), want: OutcomeError},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestNilManager(t *testing.T) {
	t.Parallel()

	var m *Manager
	m.ObserveFormula("acwr", nil)
	m.IncPanic()
	m.IncRateLimited()
	m.ObserveAuth("ok")

	h := http.NotFoundHandler()
	rec := httptest.NewRecorder()
	m.InFlight(m.InstrumentRoute("/x", h)).ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/x", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m, reg := NewTestManager()
	m.IncRateLimited()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "synthonia_test_rate_limited_total 1") {
		t.Errorf("exposition missing rate_limited_total:\n%s", rec.Body.String())
	}
}
