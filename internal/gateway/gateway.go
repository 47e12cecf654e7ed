// Package gateway holds the clients for the external payment
// processor. A declined card is a normal result; transport failures,
// non-2xx statuses and malformed responses are errors.
package gateway

import (
	"context"
	"fmt"

	"campuswallet/internal/models"
)

// ChargeRequest is the normalized input for a gateway charge. Exactly
// one of CardToken and Card is set by the time it reaches a driver.
type ChargeRequest struct {
	Amount       float64
	Currency     string
	Description  string
	CardToken    string
	Card         *models.CardDetails
	UserID       string
	MerchantName string
	Category     string
}

// ChargeResult is the normalized outcome of a charge the gateway
// actually answered, approvals and declines alike.
type ChargeResult struct {
	TransactionID     string
	Status            models.PaymentStatus
	Approved          bool
	AuthorizationCode string
	CardLast4         string
	CardBrand         string
	Message           string
	ErrorCode         string
}

// RefundResult is the outcome of a refund accepted by the gateway.
type RefundResult struct {
	RefundID      string
	TransactionID string
	Amount        float64
	Status        string
	Message       string
}

// CardToken is the result of tokenizing raw card details. It never
// carries more of the PAN than the last four digits.
type CardToken struct {
	Token string
	Last4 string
	Brand string
}

// Client is implemented by each gateway driver.
type Client interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, req models.RefundRequest) (*RefundResult, error)
	Transaction(ctx context.Context, transactionID string) (map[string]any, error)
	Tokenize(ctx context.Context, card models.CardDetails) (*CardToken, error)
}

// Error is a gateway-level failure: a non-2xx response or a response
// the driver could not interpret.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway error (HTTP %d): %s", e.Status, e.Message)
	}
	return "gateway error: " + e.Message
}
