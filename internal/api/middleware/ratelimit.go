package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/cache"
)

// RateLimit enforces a fixed-window per-client limit backed by the cache.
// The limiter fails open: if the cache is unreachable the request proceeds,
// since an analysis outage is worse than a briefly unenforced limit.
func RateLimit(c cache.Cache, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if perMinute <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := cache.RateLimitKey(clientID(r))
			count, err := c.IncrWithExpiry(r.Context(), key, time.Minute)
			if err != nil {
				slog.Warn("rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(perMinute) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(perMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(perMinute) {
				response.Error(w, http.StatusTooManyRequests,
					"RATE_LIMITED", "Too many requests, try again in a minute", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientID prefers the bearer token so authenticated clients are limited
// per key rather than per address, then falls back to the remote IP.
func clientID(r *http.Request) string {
	if token, ok := bearerToken(r); ok {
		return token
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
