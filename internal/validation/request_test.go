package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func paymentBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"amount":       float64(25),
		"currency":     "USD",
		"userId":       "user-1",
		"merchantName": "Campus Cafe",
		"cardToken":    "tok_123",
	}
	for k, v := range overrides {
		if v == nil {
			delete(body, k)
		} else {
			body[k] = v
		}
	}
	return body
}

func TestPaymentRequestErrors(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		assert.Empty(t, PaymentRequestErrors(paymentBody(nil)))
	})

	t.Run("never short-circuits", func(t *testing.T) {
		errs := PaymentRequestErrors(paymentBody(map[string]any{
			"amount":   nil,
			"currency": nil,
			"userId":   nil,
		}))
		assert.Contains(t, errs, "Amount must be a positive number")
		assert.Contains(t, errs, "Currency is required")
		assert.Contains(t, errs, "User ID is required")
	})

	tests := []struct {
		name      string
		overrides map[string]any
		want      string
	}{
		{"zero amount", map[string]any{"amount": float64(0)}, "Amount must be a positive number"},
		{"negative amount", map[string]any{"amount": float64(-5)}, "Amount must be a positive number"},
		{"amount as string", map[string]any{"amount": "25"}, "Amount must be a positive number"},
		{"missing merchant", map[string]any{"merchantName": nil}, "Merchant name is required"},
		{"currency wrong type", map[string]any{"currency": float64(1)}, "Currency is required"},
		{"neither token nor details", map[string]any{"cardToken": nil}, "Either cardToken or cardDetails must be provided"},
		{
			"both token and details",
			map[string]any{"cardDetails": map[string]any{"cardNumber": "4111111111111111"}},
			"Only one of cardToken or cardDetails may be provided",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := PaymentRequestErrors(paymentBody(tt.overrides))
			assert.Contains(t, errs, tt.want)
		})
	}
}

func TestCardDetailsFieldErrors(t *testing.T) {
	t.Run("complete card", func(t *testing.T) {
		errs := CardDetailsFieldErrors(map[string]any{
			"cardNumber":     "4111111111111111",
			"expiryMonth":    "12",
			"expiryYear":     "26",
			"cvv":            "123",
			"cardholderName": "Ada Lovelace",
		})
		assert.Empty(t, errs)
	})

	t.Run("empty object reports all five fields", func(t *testing.T) {
		errs := CardDetailsFieldErrors(map[string]any{})
		assert.Len(t, errs, 5)
	})

	t.Run("non-string field rejected", func(t *testing.T) {
		errs := CardDetailsFieldErrors(map[string]any{
			"cardNumber":     float64(4111111111111111),
			"expiryMonth":    "12",
			"expiryYear":     "26",
			"cvv":            "123",
			"cardholderName": "Ada Lovelace",
		})
		assert.Equal(t, []string{"Card number is required"}, errs)
	})
}

func TestRefundRequestErrors(t *testing.T) {
	t.Run("valid refund", func(t *testing.T) {
		errs := RefundRequestErrors(map[string]any{
			"transactionId": "txn-1",
			"reason":        "duplicate charge",
		})
		assert.Empty(t, errs)
	})

	t.Run("collects both violations", func(t *testing.T) {
		errs := RefundRequestErrors(map[string]any{})
		assert.Equal(t, []string{"Transaction ID is required", "Refund reason is required"}, errs)
	})

	t.Run("empty strings rejected", func(t *testing.T) {
		errs := RefundRequestErrors(map[string]any{"transactionId": "", "reason": ""})
		assert.Len(t, errs, 2)
	})
}
