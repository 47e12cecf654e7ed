package walletclient

import "time"

// PaymentStatus is the terminal state of a payment attempt as reported
// by the server.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentDeclined  PaymentStatus = "declined"
)

// Error codes the server may attach to a failed response.
const (
	CodeMissingAPIKey      = "MISSING_API_KEY"
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidCardDetails = "INVALID_CARD_DETAILS"
	CodeMissingCardDetails = "MISSING_CARD_DETAILS"
	CodePaymentError       = "PAYMENT_ERROR"
	CodeCardDeclined       = "CARD_DECLINED"
	CodeInternalError      = "INTERNAL_ERROR"
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

// CardDetails is a raw card as entered by the user. It is validated
// locally before it ever leaves the device and is never persisted.
type CardDetails struct {
	CardNumber     string          `json:"cardNumber"`
	ExpiryMonth    string          `json:"expiryMonth"`
	ExpiryYear     string          `json:"expiryYear"`
	CVV            string          `json:"cvv"`
	CardholderName string          `json:"cardholderName"`
	BillingAddress *BillingAddress `json:"billingAddress,omitempty"`
}

// PaymentRequest is a single charge attempt. Exactly one of CardToken
// or CardDetails must be set.
type PaymentRequest struct {
	Amount       float64      `json:"amount"`
	Currency     string       `json:"currency"`
	Description  string       `json:"description"`
	CardToken    string       `json:"cardToken,omitempty"`
	CardDetails  *CardDetails `json:"cardDetails,omitempty"`
	SaveCard     bool         `json:"saveCard,omitempty"`
	UserID       string       `json:"userId"`
	MerchantName string       `json:"merchantName"`
	Category     string       `json:"category"`
}

// PaymentResponse is always produced for a charge attempt, failures
// included.
type PaymentResponse struct {
	Success           bool          `json:"success"`
	TransactionID     string        `json:"transactionId"`
	Amount            float64       `json:"amount"`
	Currency          string        `json:"currency"`
	Status            PaymentStatus `json:"status"`
	Message           string        `json:"message"`
	Timestamp         time.Time     `json:"timestamp"`
	CardLast4         string        `json:"cardLast4,omitempty"`
	CardBrand         string        `json:"cardBrand,omitempty"`
	AuthorizationCode string        `json:"authorizationCode,omitempty"`
	ErrorCode         string        `json:"errorCode,omitempty"`
}

// RefundRequest reverses a prior transaction, fully or partially.
type RefundRequest struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount,omitempty"`
	Reason        string  `json:"reason"`
}

// RefundResponse is the structured outcome of a refund attempt.
type RefundResponse struct {
	Success               bool    `json:"success"`
	RefundID              string  `json:"refundId"`
	OriginalTransactionID string  `json:"originalTransactionId"`
	Amount                float64 `json:"amount"`
	Status                string  `json:"status"`
	Message               string  `json:"message"`
	ErrorCode             string  `json:"errorCode,omitempty"`
}

// SavedCard is a tokenized card on file, as returned by the server.
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

// TokenizeCardResponse is returned when card details are exchanged for
// a stored token.
type TokenizeCardResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	Card    *SavedCard `json:"card"`
	Message string     `json:"message"`
}
