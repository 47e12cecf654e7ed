package payment

import (
	"context"

	"campuswallet/internal/models"
)

// Service processes payments against the external gateway. Charge and
// Refund always produce a structured response, never a bare error:
// the service is callable directly, not only behind the HTTP
// middleware, so it re-validates and normalizes every failure itself.
type Service interface {
	Charge(ctx context.Context, req models.PaymentRequest) *models.PaymentResponse
	Refund(ctx context.Context, req models.RefundRequest) *models.RefundResponse
	Transaction(ctx context.Context, transactionID string) (map[string]any, error)
}

// CardSaver is the slice of the card service used for the save-card
// flag on successful charges.
type CardSaver interface {
	Tokenize(ctx context.Context, card models.CardDetails, userID string) (*models.TokenizeCardResponse, error)
}
