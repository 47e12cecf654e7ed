package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"campuswallet/internal/models"
	"campuswallet/internal/validation"

	omise "github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// OmiseClient is the omise-go driver, selected with
// GATEWAY_PROVIDER=omise. The SDK manages its own transport, so the
// request context is not propagated to it.
type OmiseClient struct {
	client *omise.Client
}

func NewOmiseClient(publicKey, secretKey string) (*OmiseClient, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("create omise client: %w", err)
	}
	return &OmiseClient{client: client}, nil
}

// toSubunits converts a major-unit amount to the gateway's subunits.
func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (o *OmiseClient) createToken(card models.CardDetails) (*omise.Token, error) {
	month, err := strconv.Atoi(card.ExpiryMonth)
	if err != nil {
		return nil, &Error{Message: "invalid expiry month"}
	}
	year, err := strconv.Atoi(card.ExpiryYear)
	if err != nil {
		return nil, &Error{Message: "invalid expiry year"}
	}
	if year < 100 {
		year += 2000
	}

	token := &omise.Token{}
	if err := o.client.Do(token, &operations.CreateToken{
		Name:            card.CardholderName,
		Number:          card.CardNumber,
		ExpirationMonth: time.Month(month),
		ExpirationYear:  year,
		SecurityCode:    card.CVV,
	}); err != nil {
		return nil, &Error{Message: "failed to create card token: " + err.Error()}
	}
	return token, nil
}

// Charge creates an omise charge from a token or raw card details.
func (o *OmiseClient) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	cardToken := req.CardToken
	if cardToken == "" && req.Card != nil {
		tok, err := o.createToken(*req.Card)
		if err != nil {
			return nil, err
		}
		cardToken = tok.ID
	}

	charge := &omise.Charge{}
	if err := o.client.Do(charge, &operations.CreateCharge{
		Amount:      toSubunits(req.Amount),
		Currency:    req.Currency,
		Card:        cardToken,
		Description: req.Description,
		Metadata: map[string]interface{}{
			"userId":       req.UserID,
			"merchantName": req.MerchantName,
			"category":     req.Category,
		},
	}); err != nil {
		return nil, &Error{Message: err.Error()}
	}

	result := &ChargeResult{
		TransactionID: charge.ID,
		Message:       "Payment successful",
	}
	if charge.Card != nil {
		result.CardLast4 = charge.Card.LastDigits
		result.CardBrand = strings.ToLower(charge.Card.Brand)
	} else if req.Card != nil {
		result.CardLast4 = validation.Last4(req.Card.CardNumber)
		result.CardBrand = validation.CardBrand(req.Card.CardNumber)
	}

	switch charge.Status {
	case omise.ChargeSuccessful:
		result.Approved = true
		result.Status = models.PaymentCompleted
	case omise.ChargePending:
		result.Approved = true
		result.Status = models.PaymentPending
	default:
		result.Status = models.PaymentDeclined
		result.ErrorCode = "CARD_DECLINED"
		result.Message = "Card declined by issuer"
		if charge.FailureMessage != nil && *charge.FailureMessage != "" {
			result.Message = *charge.FailureMessage
		}
		if charge.FailureCode != nil && *charge.FailureCode != "" {
			result.ErrorCode = strings.ToUpper(*charge.FailureCode)
		}
	}

	return result, nil
}

// Refund reverses an omise charge.
func (o *OmiseClient) Refund(_ context.Context, req models.RefundRequest) (*RefundResult, error) {
	refund := &omise.Refund{}
	op := &operations.CreateRefund{ChargeID: req.TransactionID}
	if req.Amount > 0 {
		op.Amount = toSubunits(req.Amount)
	}
	if err := o.client.Do(refund, op); err != nil {
		return nil, &Error{Message: err.Error()}
	}

	return &RefundResult{
		RefundID:      refund.ID,
		TransactionID: req.TransactionID,
		Amount:        float64(refund.Amount) / 100,
		Status:        "refunded",
		Message:       "Refund processed",
	}, nil
}

// Transaction fetches a charge and returns it verbatim.
func (o *OmiseClient) Transaction(_ context.Context, transactionID string) (map[string]any, error) {
	charge := &omise.Charge{}
	if err := o.client.Do(charge, &operations.RetrieveCharge{ChargeID: transactionID}); err != nil {
		return nil, &Error{Message: err.Error()}
	}

	raw, err := json.Marshal(charge)
	if err != nil {
		return nil, &Error{Message: "malformed gateway response"}
	}
	var detail map[string]any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, &Error{Message: "malformed gateway response"}
	}
	return detail, nil
}

// Tokenize creates a reusable omise card token.
func (o *OmiseClient) Tokenize(_ context.Context, card models.CardDetails) (*CardToken, error) {
	tok, err := o.createToken(card)
	if err != nil {
		return nil, err
	}

	token := &CardToken{Token: tok.ID}
	if tok.Card != nil {
		token.Last4 = tok.Card.LastDigits
		token.Brand = strings.ToLower(tok.Card.Brand)
	}
	if token.Last4 == "" {
		token.Last4 = validation.Last4(card.CardNumber)
	}
	if token.Brand == "" {
		token.Brand = validation.CardBrand(card.CardNumber)
	}
	return token, nil
}
