package routes

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/mw"
)

// writeLimit throttles the routes that write to storage. Each call builds
// its own limiter, so buckets are per route group. A burst <= 0 disables it.
func writeLimit(d deps.Deps) Middleware {
	if d.RateLimitBurst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRPM,
		MaxEntries:        10_000,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
		Now:               d.TimeNow,
	}, d.Logger)
}
