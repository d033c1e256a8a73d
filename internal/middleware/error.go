package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"devsa-jobs/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	traceID := uuid.New().String()[:8]

	var appErr *domain.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &appErr):
		code = appErr.HTTPStatus()
		message = appErr.Message
		if appErr.Kind == domain.KindInternal {
			slog.Error("request failed",
				slog.String("trace_id", traceID),
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		slog.Error("unhandled error",
			slog.String("trace_id", traceID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   message,
		TraceID: traceID,
	})
}

func TooManyRequests(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusTooManyRequests, message)
}
