package xhttp

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		data            any
		wantStatus      int
		wantBody        string
		wantContentType string
	}{
		{
			name:            "encodable",
			data:            map[string]float64{"score": 7.5},
			wantStatus:      http.StatusCreated,
			wantBody:        "{\"score\":7.5}\n",
			wantContentType: "application/json",
		},
		{
			name:            "infinite value",
			data:            map[string]float64{"score": math.Inf(1)},
			wantStatus:      http.StatusInternalServerError,
			wantBody:        "Internal Server Error\n",
			wantContentType: "text/plain; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteJSON(rec, http.StatusCreated, tt.data)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantContentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantContentType)
			}
		})
	}
}
