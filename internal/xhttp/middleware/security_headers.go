package middleware

import (
	"net/http"

	"github.com/garrettladley/synthonia/internal/xhttp"
)

// SecurityHeaders also forbids caching: every response may carry health data.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(xhttp.XContentTypeOpts, "nosniff")
		h.Set(xhttp.XFrameOpts, "DENY")
		h.Set(xhttp.XXSSProtection, "1; mode=block")
		h.Set(xhttp.ReferrerPolicy, "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
