package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/metrics"
)

// Metrics records every request by its route pattern, so path parameters do
// not explode label cardinality.
func Metrics(recorder metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}

		recorder.RecordRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}

func statusOf(err error) int {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
