package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nirmaanhetu/marketplace-api/internal/infrastructure/db/redis"
)

// RateLimit caps requests per client IP and minute for a route group using
// the Redis fixed-window limiter. The limiter failing is not a reason to
// reject traffic: on error the request is allowed through and the error is
// logged.
func RateLimit(limiter *redis.Limiter, scope string, perMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), scope, c.RealIP(), perMinute)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, slow down")
			}
			return next(c)
		}
	}
}
