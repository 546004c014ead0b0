package http

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

func rateLimit(limit float64, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = max(1, int(limit))
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				logger.Warn("request rate limited", "path", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
