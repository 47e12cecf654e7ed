// Package walletclient is the device-side SDK for the campus wallet
// payment API. It shapes and validates requests locally so that
// obviously-invalid ones never leave the device, and it normalizes
// every charge outcome into a PaymentResponse so the UI always has a
// structured result to render.
package walletclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HeaderAPIKey carries the shared app credential on every request.
const HeaderAPIKey = "X-App-API-Key"

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the server, carrying the
// structured error envelope when one was returned.
type APIError struct {
	Status    int
	Message   string
	ErrorCode string
	Errors    []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.Status, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Client talks to the payment API on behalf of the app.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New builds a Client for the given API base URL and app key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessPayment validates the request locally, sends it to the
// server, and always returns a structured PaymentResponse. Validation
// failures, transport errors and declines all come back as a response
// with Success=false; the error return is reserved for programming
// errors (nil client, unmarshalable request).
func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	if req.Amount <= 0 {
		return failedPayment(req, "Amount must be a positive number", CodeValidationError), nil
	}

	hasToken := req.CardToken != ""
	hasDetails := req.CardDetails != nil
	switch {
	case !hasToken && !hasDetails:
		return failedPayment(req, "Either cardToken or cardDetails must be provided", CodeMissingCardDetails), nil
	case hasToken && hasDetails:
		return failedPayment(req, "Only one of cardToken or cardDetails may be provided", CodeValidationError), nil
	}

	if hasDetails {
		if ok, errs := ValidateCardDetails(*req.CardDetails); !ok {
			return failedPayment(req, strings.Join(errs, "; "), CodeInvalidCardDetails), nil
		}
	}

	var resp PaymentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/payments/charge", req, &resp); err != nil {
		// The charge contract: callers always get a structured
		// response, never a bare transport error.
		return failedPayment(req, "Payment processing failed: "+err.Error(), CodePaymentError), nil
	}
	return &resp, nil
}

// RefundPayment sends a refund request and returns the server's
// structured result.
func (c *Client) RefundPayment(ctx context.Context, req RefundRequest) (*RefundResponse, error) {
	var resp RefundResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/payments/refund", req, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode != "" {
			return &RefundResponse{
				Success:               false,
				OriginalTransactionID: req.TransactionID,
				Status:                "failed",
				Message:               apiErr.Message,
				ErrorCode:             apiErr.ErrorCode,
			}, nil
		}
		return nil, err
	}
	return &resp, nil
}

// GetTransaction fetches the raw transaction detail for a prior charge.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (map[string]any, error) {
	var detail map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/payments/transaction/"+url.PathEscape(transactionID), nil, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// TokenizeCard validates card details locally and exchanges them for a
// stored token. The raw PAN never appears in the result.
func (c *Client) TokenizeCard(ctx context.Context, card CardDetails, userID string) (*TokenizeCardResponse, error) {
	if ok, errs := ValidateCardDetails(card); !ok {
		return nil, &APIError{
			Status:    http.StatusBadRequest,
			Message:   "Card validation failed",
			ErrorCode: CodeInvalidCardDetails,
			Errors:    errs,
		}
	}

	body := struct {
		CardDetails CardDetails `json:"cardDetails"`
		UserID      string      `json:"userId"`
	}{CardDetails: card, UserID: userID}

	var resp TokenizeCardResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/cards/tokenize", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SavedCards lists the user's cards on file.
func (c *Client) SavedCards(ctx context.Context, userID string) ([]SavedCard, error) {
	var resp struct {
		Success bool        `json:"success"`
		Cards   []SavedCard `json:"cards"`
	}
	path := "/api/cards/list?userId=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

// DeleteSavedCard removes a card on file.
func (c *Client) DeleteSavedCard(ctx context.Context, userID, cardID string) error {
	path := "/api/cards/" + url.PathEscape(cardID) + "?userId=" + url.QueryEscape(userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// SetDefaultCard makes one card the user's default; the server unmarks
// every other card in the same operation.
func (c *Client) SetDefaultCard(ctx context.Context, userID, cardID string) error {
	body := struct {
		CardID string `json:"cardId"`
		UserID string `json:"userId"`
	}{CardID: cardID, UserID: userID}
	return c.doJSON(ctx, http.MethodPost, "/api/cards/set-default", body, nil)
}

// doJSON performs one request: marshal, send with the app key header,
// decode either the result or the server's error envelope.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderAPIKey, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Message   string   `json:"message"`
			ErrorCode string   `json:"errorCode"`
			Errors    []string `json:"errors"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
			apiErr.ErrorCode = envelope.ErrorCode
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func failedPayment(req PaymentRequest, message, code string) *PaymentResponse {
	return &PaymentResponse{
		Success:   false,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    PaymentFailed,
		Message:   message,
		Timestamp: time.Now().UTC(),
		ErrorCode: code,
	}
}
