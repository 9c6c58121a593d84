package middleware

import (
	"context"
	"time"

	"medico/config"

	"github.com/labstack/echo/v4"
)

// TimeoutMiddleware bounds the lifetime of the request context. Database and
// blob operations observe the deadline through the context they are given.
type TimeoutMiddleware struct {
	timeout time.Duration
}

// NewTimeoutMiddleware reads the request timeout from the HTTP config.
func NewTimeoutMiddleware(cfg *config.Config) *TimeoutMiddleware {
	return &TimeoutMiddleware{timeout: cfg.HTTP.RequestTimeout}
}

// Handle attaches the deadline. A zero timeout disables it.
func (m *TimeoutMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.timeout <= 0 {
			return next(c)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), m.timeout)
		defer cancel()
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
