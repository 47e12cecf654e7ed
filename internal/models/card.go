package models

import "time"

// Card brands recognized by prefix classification.
const (
	BrandVisa       = "visa"
	BrandMastercard = "mastercard"
	BrandAmex       = "amex"
	BrandDiscover   = "discover"
	BrandUnknown    = "unknown"
)

// BillingAddress is the optional address attached to card details.
type BillingAddress struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CardDetails is a raw card as entered by the user. It only ever lives
// in a request in flight; nothing beyond the token and last four digits
// is stored.
type CardDetails struct {
	CardNumber     string          `json:"cardNumber"`
	ExpiryMonth    string          `json:"expiryMonth"`
	ExpiryYear     string          `json:"expiryYear"`
	CVV            string          `json:"cvv"`
	CardholderName string          `json:"cardholderName"`
	BillingAddress *BillingAddress `json:"billingAddress,omitempty"`
}

// SavedCard is a tokenized card on file. The PAN is gone by the time
// one of these exists; Last4 is all that remains for display.
type SavedCard struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Token          string    `json:"token"`
	Last4          string    `json:"last4"`
	Brand          string    `json:"brand"`
	ExpiryMonth    string    `json:"expiryMonth"`
	ExpiryYear     string    `json:"expiryYear"`
	CardholderName string    `json:"cardholderName"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TokenizeCardResponse is returned when raw card details are exchanged
// for a stored token.
type TokenizeCardResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	Card    *SavedCard `json:"card"`
	Message string     `json:"message"`
}
