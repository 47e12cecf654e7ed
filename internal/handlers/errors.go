package handlers

import (
	"errors"
	"log"
	"runtime/debug"

	apperrors "campuswallet/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// NotFound is the terminal 404 fallback for unmatched paths.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Endpoint not found",
		"path":    c.Path(),
	})
}

// NewErrorHandler builds the global error fallback. Anything that
// escapes a handler is rendered as a structured envelope; a stack is
// attached only outside production.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := apperrors.CodeInternalError

		var domainErr *apperrors.DomainError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &domainErr):
			status = fiber.StatusBadRequest
			message = domainErr.Message
			errorCode = domainErr.Code
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Printf("unhandled error: %v", err)
		}

		body := fiber.Map{
			"success":   false,
			"message":   message,
			"errorCode": errorCode,
		}
		if !production {
			body["stack"] = err.Error() + "\n" + string(debug.Stack())
		}
		return c.Status(status).JSON(body)
	}
}
