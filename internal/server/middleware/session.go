package middleware

import (
	"errors"
	"net/http"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/service/auth"
	"github.com/garrettladley/synthonia/internal/xcontext"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

// SessionAuth resolves the bearer session token and stores the user id and
// token in the request context.
func SessionAuth(authService auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := xhttp.GetBearerToken(r)
			if token == "" {
				apperr.WriteError(ctx, w, apperr.Unauthorized("unauthorized", "missing bearer token"))
				return
			}

			userID, err := authService.Authenticate(ctx, token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidSession) {
					xslog.FromContext(ctx).WarnContext(ctx, "session validation failed", xslog.RequestPath(r))
					apperr.WriteError(ctx, w, apperr.Unauthorized("unauthorized", "invalid or expired session"))
					return
				}
				apperr.WriteError(ctx, w, apperr.Internal("internal_error", "session validation failed", err))
				return
			}

			ctx = xcontext.SetUserID(ctx, userID)
			ctx = xcontext.SetSessionToken(ctx, token)
			ctx = xslog.WithUser(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
