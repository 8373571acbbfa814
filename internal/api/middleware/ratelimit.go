package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit throttles quote requests per caller. Callers are keyed by the
// client_id claim, falling back to the remote IP for admin tokens without one.
// Must run after Auth.
func RateLimit(rps float64) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burstFor(rps),
		ExpiresIn: 3 * time.Minute,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store:               store,
		IdentifierExtractor: callerIdentifier,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify caller")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}

func callerIdentifier(c echo.Context) (string, error) {
	if caller, ok := CallerFrom(c); ok && caller.ClientID != "" {
		return "client:" + caller.ClientID, nil
	}
	return "ip:" + c.RealIP(), nil
}

// burstFor allows one second worth of requests, at least one.
func burstFor(rps float64) int {
	if rps < 1 {
		return 1
	}
	return int(rps)
}
