package apperr

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteError renders err as a JSON error body. Errors that are neither
// *Error nor domain errors become a generic 500 so internals never leak.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = FromDomain(err)
	}
	if appErr == nil {
		appErr = Internal("internal_error", "an unexpected error occurred", err)
	}

	logError(ctx, appErr)

	if appErr.StatusCode == http.StatusTooManyRequests {
		if appErr.RetryAfter > 0 {
			xhttp.SetHeaderRetryAfter(w, appErr.RetryAfter)
		}
		if appErr.Reason != "" {
			w.Header().Set(xhttp.XRateLimitReason, appErr.Reason)
		}
	}

	xhttp.WriteJSON(w, appErr.StatusCode, errorResponse{
		Error:   appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
	})
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("code", err.Code),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}
	if len(err.Fields) > 0 {
		attrs = append(attrs, slog.Any("fields", err.Fields))
	}

	switch err.StatusCode / 100 {
	case 5:
		logger.ErrorContext(ctx, "server error", attrs...)
	case 4:
		logger.WarnContext(ctx, "client error", attrs...)
	default:
		logger.InfoContext(ctx, "error response", attrs...)
	}
}
