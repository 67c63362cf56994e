package middleware

import (
	"net/http"

	"github.com/garrettladley/synthonia/internal/xcontext"
)

// ShutdownContext flags requests whose base context is already cancelled so
// logs can tell server shutdown apart from client disconnects.
func ShutdownContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Err() != nil {
			r = r.WithContext(xcontext.SetShutdownInProgress(r.Context(), true))
		}
		next.ServeHTTP(w, r)
	})
}
