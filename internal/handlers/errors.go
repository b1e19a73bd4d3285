package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
	"aiready/resume-ai/internal/services"
)

const (
	msgInvalidRequest = "잘못된 요청입니다."
	msgTooLarge       = "문서가 너무 큽니다."
	msgInternal       = "서버 내부 오류가 발생했습니다."
	msgRateLimited    = "Rate limit exceeded. Please try again shortly."
)

func respondError(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

// ErrorHandler renders every error that escapes a route as {detail, timestamp}.
// Service error causes are logged, never returned to the client.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var se *services.ServiceError
		if errors.As(err, &se) {
			log.Warn("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"kind", se.Kind,
				"error", err,
			)
			return respondError(c, se.StatusCode(), se.Message)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			detail := fe.Message
			if fe.Code == fiber.StatusRequestEntityTooLarge {
				detail = msgTooLarge
			}
			return respondError(c, fe.Code, detail)
		}

		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return respondError(c, fiber.StatusInternalServerError, msgInternal)
	}
}
