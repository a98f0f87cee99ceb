package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/metrics"
)

// CountRequests increments the request counter by status code and method
// after each handler runs.
func CountRequests(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		code := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}
		m.HTTPServerReqs.WithLabelValues(strconv.Itoa(code), c.Method()).Inc()

		return err
	}
}
