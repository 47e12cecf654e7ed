// Package response shapes the JSON envelopes returned by the API.
// Every error body carries {success:false, message, errorCode}.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Success sends data under a success envelope.
func Success(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.JSON(body)
}

// Error sends a structured error envelope.
func Error(c *fiber.Ctx, status int, message, errorCode string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":   false,
		"message":   message,
		"errorCode": errorCode,
	})
}

// ValidationFailed sends a 400 carrying every violated rule.
func ValidationFailed(c *fiber.Ctx, message string, errs []string, errorCode string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":   false,
		"message":   message,
		"errors":    errs,
		"errorCode": errorCode,
	})
}
