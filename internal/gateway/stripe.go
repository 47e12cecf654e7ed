package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"campuswallet/internal/models"
	"campuswallet/internal/validation"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeClient is the stripe-go driver, selected with
// GATEWAY_PROVIDER=stripe. Card declines surface as stripe card errors
// and are mapped to declined results.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

func (s *StripeClient) cardToken(ctx context.Context, card models.CardDetails) (*stripe.Token, error) {
	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(card.CardNumber),
			ExpMonth: stripe.String(card.ExpiryMonth),
			ExpYear:  stripe.String(card.ExpiryYear),
			CVC:      stripe.String(card.CVV),
			Name:     stripe.String(card.CardholderName),
		},
	}
	params.Context = ctx
	return s.api.Tokens.New(params)
}

// Charge creates a stripe charge from a token or raw card details.
func (s *StripeClient) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	source := req.CardToken
	if source == "" && req.Card != nil {
		tok, err := s.cardToken(ctx, *req.Card)
		if err != nil {
			return declinedFromStripeErr(err)
		}
		source = tok.ID
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(toCents(req.Amount)),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)
	params.AddMetadata("merchantName", req.MerchantName)
	params.AddMetadata("category", req.Category)
	if err := params.SetSource(source); err != nil {
		return nil, &Error{Message: "invalid charge source: " + err.Error()}
	}

	ch, err := s.api.Charges.New(params)
	if err != nil {
		return declinedFromStripeErr(err)
	}

	result := &ChargeResult{
		TransactionID: ch.ID,
		Message:       "Payment successful",
	}
	if ch.PaymentMethodDetails != nil && ch.PaymentMethodDetails.Card != nil {
		result.CardLast4 = ch.PaymentMethodDetails.Card.Last4
		result.CardBrand = strings.ToLower(string(ch.PaymentMethodDetails.Card.Brand))
	} else if req.Card != nil {
		result.CardLast4 = validation.Last4(req.Card.CardNumber)
		result.CardBrand = validation.CardBrand(req.Card.CardNumber)
	}

	switch ch.Status {
	case "succeeded":
		result.Approved = true
		result.Status = models.PaymentCompleted
	case "pending":
		result.Approved = true
		result.Status = models.PaymentPending
	default:
		result.Status = models.PaymentDeclined
		result.ErrorCode = "CARD_DECLINED"
		result.Message = "Card declined by issuer"
		if ch.Outcome != nil && ch.Outcome.SellerMessage != "" {
			result.Message = ch.Outcome.SellerMessage
		}
	}

	return result, nil
}

// declinedFromStripeErr converts a stripe card error into a declined
// result; everything else stays a gateway error.
func declinedFromStripeErr(err error) (*ChargeResult, error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeCard {
			msg := stripeErr.Msg
			if msg == "" {
				msg = "Card declined by issuer"
			}
			return &ChargeResult{
				Status:    models.PaymentDeclined,
				Message:   msg,
				ErrorCode: "CARD_DECLINED",
			}, nil
		}
		return nil, &Error{Status: stripeErr.HTTPStatusCode, Message: stripeErr.Msg}
	}
	return nil, err
}

// Refund reverses a stripe charge.
func (s *StripeClient) Refund(ctx context.Context, req models.RefundRequest) (*RefundResult, error) {
	params := &stripe.RefundParams{
		Charge: stripe.String(req.TransactionID),
	}
	params.Context = ctx
	params.AddMetadata("reason", req.Reason)
	if req.Amount > 0 {
		params.Amount = stripe.Int64(toCents(req.Amount))
	}

	ref, err := s.api.Refunds.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &Error{Status: stripeErr.HTTPStatusCode, Message: stripeErr.Msg}
		}
		return nil, err
	}

	return &RefundResult{
		RefundID:      ref.ID,
		TransactionID: req.TransactionID,
		Amount:        fromCents(ref.Amount),
		Status:        string(ref.Status),
		Message:       "Refund processed",
	}, nil
}

// Transaction fetches a charge and returns it verbatim.
func (s *StripeClient) Transaction(ctx context.Context, transactionID string) (map[string]any, error) {
	params := &stripe.ChargeParams{}
	params.Context = ctx

	ch, err := s.api.Charges.Get(transactionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &Error{Status: stripeErr.HTTPStatusCode, Message: stripeErr.Msg}
		}
		return nil, err
	}

	raw, err := json.Marshal(ch)
	if err != nil {
		return nil, &Error{Message: "malformed gateway response"}
	}
	var detail map[string]any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, &Error{Message: "malformed gateway response"}
	}
	return detail, nil
}

// Tokenize creates a reusable stripe card token.
func (s *StripeClient) Tokenize(ctx context.Context, card models.CardDetails) (*CardToken, error) {
	tok, err := s.cardToken(ctx, card)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &Error{Status: stripeErr.HTTPStatusCode, Message: stripeErr.Msg}
		}
		return nil, err
	}

	token := &CardToken{Token: tok.ID}
	if tok.Card != nil {
		token.Last4 = tok.Card.Last4
		token.Brand = strings.ToLower(string(tok.Card.Brand))
	}
	if token.Last4 == "" {
		token.Last4 = validation.Last4(card.CardNumber)
	}
	if token.Brand == "" {
		token.Brand = validation.CardBrand(card.CardNumber)
	}
	return token, nil
}
