package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/synthonia/internal/xcontext"
	"github.com/garrettladley/synthonia/internal/xslog"
)

// Logger injects an enriched logger into request context.
// Must run AFTER RequestID middleware.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attrs := make([]any, 0, 2)
			if id, ok := xcontext.GetRequestID(r.Context()); ok {
				attrs = append(attrs, xslog.RequestID(id))
			}
			if xcontext.IsShutdownInProgress(r.Context()) {
				attrs = append(attrs, slog.Bool("shutdown", true))
			}
			ctx := xslog.WithLogger(r.Context(), base.With(attrs...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
