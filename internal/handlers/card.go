package handlers

import (
	"errors"

	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/models"
	"campuswallet/internal/services/card"
	"campuswallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	service card.Service
}

func NewCardHandler(svc card.Service) *CardHandler {
	return &CardHandler{service: svc}
}

// Tokenize exchanges raw card details for a stored card token.
func (h *CardHandler) Tokenize(c *fiber.Ctx) error {
	var input struct {
		CardDetails models.CardDetails `json:"cardDetails"`
		UserID      string             `json:"userId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request format", apperrors.CodeValidationError)
	}
	if input.UserID == "" {
		return response.Error(c, fiber.StatusBadRequest, "User ID is required", apperrors.CodeValidationError)
	}

	resp, err := h.service.Tokenize(c.Context(), input.CardDetails, input.UserID)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return response.ValidationFailed(c, domainErr.Message, domainErr.Errors, domainErr.Code)
		}
		return response.Error(c, fiber.StatusBadGateway, "Failed to save card", apperrors.CodePaymentError)
	}
	return c.JSON(resp)
}

// List returns the user's saved cards.
func (h *CardHandler) List(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return response.Error(c, fiber.StatusBadRequest, "User ID is required", apperrors.CodeValidationError)
	}

	cards, err := h.service.List(c.Context(), userID)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to fetch cards", apperrors.CodeInternalError)
	}
	return response.Success(c, fiber.Map{"cards": cards})
}

// Delete removes a saved card owned by the user.
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	cardID := c.Params("id")
	userID := c.Query("userId")
	if userID == "" {
		return response.Error(c, fiber.StatusBadRequest, "User ID is required", apperrors.CodeValidationError)
	}

	if err := h.service.Delete(c.Context(), userID, cardID); err != nil {
		return cardError(c, err)
	}
	return response.Success(c, fiber.Map{"message": "Card deleted successfully"})
}

// SetDefault promotes one card to default; every other card of the
// user is unmarked in the same operation.
func (h *CardHandler) SetDefault(c *fiber.Ctx) error {
	var input struct {
		CardID string `json:"cardId"`
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request format", apperrors.CodeValidationError)
	}
	if input.CardID == "" || input.UserID == "" {
		return response.Error(c, fiber.StatusBadRequest, "Card ID and user ID are required", apperrors.CodeValidationError)
	}

	if err := h.service.SetDefault(c.Context(), input.UserID, input.CardID); err != nil {
		return cardError(c, err)
	}
	return response.Success(c, fiber.Map{"message": "Default card updated"})
}

func cardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrCardNotFound):
		return response.Error(c, fiber.StatusNotFound, "Card not found", apperrors.CodeValidationError)
	case errors.Is(err, apperrors.ErrCardNotOwned):
		return response.Error(c, fiber.StatusForbidden, "Card does not belong to user", apperrors.CodeValidationError)
	default:
		return response.Error(c, fiber.StatusInternalServerError, "Card operation failed", apperrors.CodeInternalError)
	}
}
