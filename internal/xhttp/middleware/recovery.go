package middleware

import (
	"net/http"

	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

// Recovery turns a handler panic into a 500. onPanic, when set, is called
// after logging (the metrics counter hooks in here).
func Recovery(onPanic func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}
				xslog.FromContext(r.Context()).ErrorContext(
					r.Context(),
					"panic recovered",
					xslog.RequestGroup(r),
					xslog.ErrorGroupWithStack(err),
				)
				if onPanic != nil {
					onPanic()
				}
				xhttp.Error(w, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
