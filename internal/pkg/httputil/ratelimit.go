package httputil

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies a process-wide request limit. An rps of
// zero or less disables limiting entirely. Requests over the limit get
// a 429 with the uniform error payload.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				Fail(w, http.StatusTooManyRequests, "too many requests", "request rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
