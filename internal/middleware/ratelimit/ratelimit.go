package ratelimit

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	period = 1 * time.Minute
	limit  = 5
)

// Middleware caps sensitive endpoints at a fixed number of requests per
// client IP per minute. A nil client disables limiting.
func Middleware(client *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := "rate_limit:" + c.RealIP()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				// redis being down should not lock users out
				return next(c)
			}

			if count == 1 {
				client.Expire(ctx, key, period)
			}

			if count > limit {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			return next(c)
		}
	}
}
