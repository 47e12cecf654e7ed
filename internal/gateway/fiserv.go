package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campuswallet/internal/models"
	"campuswallet/internal/validation"

	"github.com/google/uuid"
)

// FiservConfig configures the default HTTP gateway driver.
type FiservConfig struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	MerchantID string
	StoreID    string
	TerminalID string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// FiservClient talks to the processor's REST API. Every request is
// signed: Message-Signature = base64(HMAC-SHA256(secret, apiKey +
// clientRequestId + timestamp + body)).
type FiservClient struct {
	cfg  FiservConfig
	http *http.Client
}

func NewFiservClient(cfg FiservConfig) *FiservClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &FiservClient{cfg: cfg, http: httpClient}
}

func (f *FiservClient) sign(requestID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(f.cfg.APISecret))
	mac.Write([]byte(f.cfg.APIKey))
	mac.Write([]byte(requestID))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type fiservErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (f *FiservClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode gateway request: %w", err)
		}
	}

	url := strings.TrimRight(f.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}

	requestID := uuid.NewString()
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", f.cfg.APIKey)
	req.Header.Set("Client-Request-Id", requestID)
	req.Header.Set("Timestamp", timestamp)
	req.Header.Set("Message-Signature", f.sign(requestID, timestamp, body))

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody fiservErrorBody
		message := "request rejected"
		if json.Unmarshal(respBody, &errBody) == nil {
			if errBody.Message != "" {
				message = errBody.Message
			} else if errBody.Error != "" {
				message = errBody.Error
			}
		}
		return &Error{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: "malformed gateway response"}
		}
	}
	return nil
}

type fiservCard struct {
	Number       string `json:"number,omitempty"`
	ExpiryMonth  string `json:"expiryMonth,omitempty"`
	ExpiryYear   string `json:"expiryYear,omitempty"`
	SecurityCode string `json:"securityCode,omitempty"`
	HolderName   string `json:"holderName,omitempty"`
}

type fiservChargeResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	ApprovalCode  string `json:"approvalCode"`
	Message       string `json:"message"`
	ErrorCode     string `json:"errorCode"`
	Card          struct {
		Last4 string `json:"last4"`
		Brand string `json:"brand"`
	} `json:"card"`
}

// Charge submits a payment. APPROVED and PENDING map to success;
// DECLINED comes back as a normal result, anything else is an error.
func (f *FiservClient) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	payload := map[string]any{
		"amount": map[string]any{
			"total":    req.Amount,
			"currency": req.Currency,
		},
		"merchantDetails": map[string]any{
			"merchantId": f.cfg.MerchantID,
			"storeId":    f.cfg.StoreID,
			"terminalId": f.cfg.TerminalID,
		},
		"transactionDetails": map[string]any{
			"description":  req.Description,
			"merchantName": req.MerchantName,
			"category":     req.Category,
			"userId":       req.UserID,
		},
	}
	if req.CardToken != "" {
		payload["source"] = map[string]any{"type": "PaymentToken", "token": req.CardToken}
	} else if req.Card != nil {
		payload["source"] = map[string]any{
			"type": "PaymentCard",
			"card": fiservCard{
				Number:       req.Card.CardNumber,
				ExpiryMonth:  req.Card.ExpiryMonth,
				ExpiryYear:   req.Card.ExpiryYear,
				SecurityCode: req.Card.CVV,
				HolderName:   req.Card.CardholderName,
			},
		}
	}

	var resp fiservChargeResponse
	if err := f.do(ctx, http.MethodPost, "/payments/v1/charges", payload, &resp); err != nil {
		return nil, err
	}

	result := &ChargeResult{
		TransactionID:     resp.TransactionID,
		AuthorizationCode: resp.ApprovalCode,
		CardLast4:         resp.Card.Last4,
		CardBrand:         resp.Card.Brand,
		Message:           resp.Message,
		ErrorCode:         resp.ErrorCode,
	}

	switch strings.ToUpper(resp.Status) {
	case "APPROVED", "COMPLETED", "CAPTURED":
		result.Approved = true
		result.Status = models.PaymentCompleted
	case "PENDING", "AUTHORIZED":
		result.Approved = true
		result.Status = models.PaymentPending
	case "DECLINED":
		result.Status = models.PaymentDeclined
		if result.Message == "" {
			result.Message = "Card declined by issuer"
		}
	default:
		return nil, &Error{Message: "unrecognized charge status: " + resp.Status}
	}

	return result, nil
}

type fiservRefundResponse struct {
	RefundID      string  `json:"refundId"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Message       string  `json:"message"`
}

// Refund reverses a transaction, partially when an amount is set.
func (f *FiservClient) Refund(ctx context.Context, req models.RefundRequest) (*RefundResult, error) {
	payload := map[string]any{
		"transactionId": req.TransactionID,
		"reason":        req.Reason,
		"merchantDetails": map[string]any{
			"merchantId": f.cfg.MerchantID,
			"storeId":    f.cfg.StoreID,
			"terminalId": f.cfg.TerminalID,
		},
	}
	if req.Amount > 0 {
		payload["amount"] = req.Amount
	}

	var resp fiservRefundResponse
	if err := f.do(ctx, http.MethodPost, "/payments/v1/refunds", payload, &resp); err != nil {
		return nil, err
	}

	return &RefundResult{
		RefundID:      resp.RefundID,
		TransactionID: resp.TransactionID,
		Amount:        resp.Amount,
		Status:        resp.Status,
		Message:       resp.Message,
	}, nil
}

// Transaction fetches transaction detail verbatim for passthrough.
func (f *FiservClient) Transaction(ctx context.Context, transactionID string) (map[string]any, error) {
	var detail map[string]any
	if err := f.do(ctx, http.MethodGet, "/payments/v1/transactions/"+transactionID, nil, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

type fiservTokenResponse struct {
	Token string `json:"token"`
	Last4 string `json:"last4"`
	Brand string `json:"brand"`
}

// Tokenize exchanges raw card details for an opaque token.
func (f *FiservClient) Tokenize(ctx context.Context, card models.CardDetails) (*CardToken, error) {
	payload := map[string]any{
		"card": fiservCard{
			Number:       card.CardNumber,
			ExpiryMonth:  card.ExpiryMonth,
			ExpiryYear:   card.ExpiryYear,
			SecurityCode: card.CVV,
			HolderName:   card.CardholderName,
		},
		"merchantDetails": map[string]any{
			"merchantId": f.cfg.MerchantID,
			"storeId":    f.cfg.StoreID,
			"terminalId": f.cfg.TerminalID,
		},
	}

	var resp fiservTokenResponse
	if err := f.do(ctx, http.MethodPost, "/payments-vas/v1/tokens", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Message: "tokenization returned no token"}
	}

	token := &CardToken{Token: resp.Token, Last4: resp.Last4, Brand: resp.Brand}
	if token.Last4 == "" {
		token.Last4 = validation.Last4(card.CardNumber)
	}
	if token.Brand == "" {
		token.Brand = validation.CardBrand(card.CardNumber)
	}
	return token, nil
}
