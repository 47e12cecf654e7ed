// Package errors defines the domain error type and the error codes
// returned in API envelopes.
package errors

import "strings"

// Error codes used across middleware, services and handlers.
const (
	CodeMissingAPIKey      = "MISSING_API_KEY"
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidCardDetails = "INVALID_CARD_DETAILS"
	CodeMissingCardDetails = "MISSING_CARD_DETAILS"
	CodePaymentError       = "PAYMENT_ERROR"
	CodeCardDeclined       = "CARD_DECLINED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeAuthError          = "AUTH_ERROR"
)

// DomainError is an error with a stable code and, for validation
// failures, the full set of violated rules.
type DomainError struct {
	Code    string
	Message string
	Errors  []string
}

func (e *DomainError) Error() string {
	if len(e.Errors) > 0 {
		return e.Message + ": " + strings.Join(e.Errors, "; ")
	}
	return e.Message
}

var (
	ErrCardNotFound = &DomainError{
		Code:    CodeValidationError,
		Message: "card not found",
	}
	ErrCardNotOwned = &DomainError{
		Code:    CodeValidationError,
		Message: "card does not belong to user",
	}
)
