package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"airline-api/pkg/ratelimit"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit rejects clients over quota with 429 and a Retry-After header.
// Clients are keyed by IP, so it must run after chi's RealIP. When the store
// fails the request is let through.
func RateLimit(store ratelimit.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			decision, err := store.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("Rate limit store unavailable", zap.String("client", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				secs := int(math.Ceil(decision.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))

				logger.Info("Rate limit exceeded",
					zap.String("client", key),
					zap.String("path", r.URL.Path),
					zap.Duration("retry_after", decision.RetryAfter),
				)
				utils.ResponseTooManyRequests(w, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
