package handlers

import (
	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/models"
	"campuswallet/internal/services/payment"
	"campuswallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// Charge processes a payment. The body already passed the payload
// validator; the service re-validates anyway and always answers with
// a structured PaymentResponse, so the status is 200 either way and
// clients read the success flag.
func (h *PaymentHandler) Charge(c *fiber.Ctx) error {
	var req models.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request format", apperrors.CodeValidationError)
	}

	return c.JSON(h.service.Charge(c.Context(), req))
}

// Refund forwards a refund. Gateway failures map to 502, validation
// failures to 400, both with the structured refund body.
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	var req models.RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request format", apperrors.CodeValidationError)
	}

	resp := h.service.Refund(c.Context(), req)
	if !resp.Success {
		status := fiber.StatusBadGateway
		if resp.ErrorCode == apperrors.CodeValidationError {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(resp)
	}
	return c.JSON(resp)
}

// GetTransaction relays gateway transaction detail verbatim.
func (h *PaymentHandler) GetTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("id")
	if transactionID == "" {
		return response.Error(c, fiber.StatusBadRequest, "Transaction ID is required", apperrors.CodeValidationError)
	}

	detail, err := h.service.Transaction(c.Context(), transactionID)
	if err != nil {
		return response.Error(c, fiber.StatusBadGateway, "Failed to fetch transaction", apperrors.CodePaymentError)
	}
	return c.JSON(detail)
}
