package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/girotrack/girotrack-backend/api/responses"
	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit throttles requests per authenticated user, falling back to
// the client IP for anonymous traffic. A missing store disables the
// limiter instead of failing requests.
func RateLimit(store rateLimiterStore, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || limit <= 0 || window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scope := UserIDFromContext(ctx)
			if scope == "" {
				scope = "ip:" + clientIP(r)
			}

			allowed, count, err := store.FixedWindowAllow(ctx, scope, limit, window)
			if err != nil {
				// Limiter outages fail open.
				if logg != nil {
					logg.Warn(ctx, "rate limiter unavailable, letting request through")
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					blocked := logg.WithFields(ctx, map[string]any{
						"scope":          scope,
						"attempts":       count,
						"limit":          limit,
						"window_seconds": int(window.Seconds()),
					})
					logg.Warn(blocked, "rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
