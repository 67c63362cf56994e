package xhttp

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	XXSSProtection   = "X-Xss-Protection"
	ReferrerPolicy   = "Referrer-Policy"
	XRateLimitReason = "X-RateLimit-Reason"
	XRequestID       = "X-Request-ID"
	Authorization    = "Authorization"
)

const ContentType = "Content-Type"

const bearerPrefix = "Bearer "

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	const applicationJSON = "application/json"
	w.Header().Set(ContentType, applicationJSON)
}

func SetHeaderRetryAfter(w http.ResponseWriter, retryAfter time.Duration) {
	const retryAfterHeader = "Retry-After"
	w.Header().Set(retryAfterHeader, strconv.Itoa(int(retryAfter.Seconds())))
}

// GetBearerToken returns the token from an "Authorization: Bearer" header,
// or "" when the header is missing or uses another scheme.
func GetBearerToken(r *http.Request) string {
	h := r.Header.Get(Authorization)
	if len(h) < len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(bearerPrefix):])
}
