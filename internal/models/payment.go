package models

import "time"

// PaymentStatus is the terminal state of a payment attempt.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentDeclined  PaymentStatus = "declined"
)

// PaymentRequest is a single charge attempt. Exactly one of CardToken
// or CardDetails must be set. Requests are sent once and discarded;
// retries are user-initiated re-submissions.
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

// PaymentResponse is always returned for a charge attempt, failures
// included. Success=true implies Status completed or pending.
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
// Reason is mandatory.
type RefundRequest struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount,omitempty"`
	Reason        string  `json:"reason"`
}

// RefundResponse mirrors PaymentResponse: refund failures are also
// normalized into a structured result rather than surfaced as errors.
type RefundResponse struct {
	Success               bool    `json:"success"`
	RefundID              string  `json:"refundId"`
	OriginalTransactionID string  `json:"originalTransactionId"`
	Amount                float64 `json:"amount"`
	Status                string  `json:"status"`
	Message               string  `json:"message"`
	ErrorCode             string  `json:"errorCode,omitempty"`
}
