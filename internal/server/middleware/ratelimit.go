package middleware

import (
	"net/http"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/storage"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

// RateLimit applies IP-based rate limiting. m may be nil.
func RateLimit(limiter storage.RateLimiter, m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := xhttp.GetRequestIP(r)

			result, err := limiter.Allow(ctx, ip)
			if err != nil {
				xslog.FromContext(ctx).ErrorContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(ip),
				)
				apperr.WriteError(ctx, w, apperr.ServiceUnavailable("unavailable", "rate limit check failed"))
				return
			}

			if !result.Allowed {
				m.IncRateLimited()
				apperr.WriteError(ctx, w, apperr.TooManyRequests(result.RetryAfter, "ip_rate_limit"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
