package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/leaderboard-backend/internal/metrics"
)

// Metrics records request counts and latency. It labels by the route
// template (c.Path) so ids in URLs do not explode the label set.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.ObserveRequest(path, c.Request().Method, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
