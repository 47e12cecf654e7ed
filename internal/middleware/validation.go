package middleware

import (
	"encoding/json"

	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/utils/response"
	"campuswallet/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// decodeBody parses the request body into a map so validators can
// check both presence and JSON types. Malformed JSON is a 400. A JSON
// null decodes into a nil map without error; it comes back as an empty
// map so the validators report every missing field.
func decodeBody(c *fiber.Ctx) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, response.Error(c, fiber.StatusBadRequest, "Invalid JSON body", apperrors.CodeValidationError)
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// ValidatePaymentRequest gates /payments/charge. All violations are
// collected before responding.
func ValidatePaymentRequest(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if body == nil {
		return err
	}

	if errs := validation.PaymentRequestErrors(body); len(errs) > 0 {
		return response.ValidationFailed(c, "Validation failed", errs, apperrors.CodeValidationError)
	}
	return c.Next()
}

// ValidateCardDetails gates /cards/tokenize.
func ValidateCardDetails(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if body == nil {
		return err
	}

	card, ok := body["cardDetails"].(map[string]any)
	if !ok {
		return response.Error(c, fiber.StatusBadRequest, "Card details are required", apperrors.CodeMissingCardDetails)
	}

	if errs := validation.CardDetailsFieldErrors(card); len(errs) > 0 {
		return response.ValidationFailed(c, "Card validation failed", errs, apperrors.CodeInvalidCardDetails)
	}
	return c.Next()
}

// ValidateRefundRequest gates /payments/refund.
func ValidateRefundRequest(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if body == nil {
		return err
	}

	if errs := validation.RefundRequestErrors(body); len(errs) > 0 {
		return response.ValidationFailed(c, "Refund validation failed", errs, apperrors.CodeValidationError)
	}
	return c.Next()
}
