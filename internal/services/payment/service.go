package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/gateway"
	"campuswallet/internal/models"
	"campuswallet/internal/validation"
)

type service struct {
	gateway gateway.Client
	cards   CardSaver
	now     func() time.Time
}

// NewService creates the payment service. cards may be nil when
// save-on-charge is not wanted.
func NewService(gw gateway.Client, cards CardSaver) Service {
	return &service{
		gateway: gw,
		cards:   cards,
		now:     time.Now,
	}
}

func (s *service) failure(req models.PaymentRequest, status models.PaymentStatus, code, message string) *models.PaymentResponse {
	return &models.PaymentResponse{
		Success:   false,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    status,
		Message:   message,
		Timestamp: s.now().UTC(),
		ErrorCode: code,
	}
}

// Charge runs a payment attempt end to end: second-line validation,
// gateway call, response shaping. Gateway failures come back as
// status=failed with PAYMENT_ERROR, never as an error.
func (s *service) Charge(ctx context.Context, req models.PaymentRequest) *models.PaymentResponse {
	if req.Amount <= 0 {
		return s.failure(req, models.PaymentFailed, apperrors.CodeValidationError, "Amount must be greater than zero")
	}

	hasToken := req.CardToken != ""
	hasDetails := req.CardDetails != nil
	if !hasToken && !hasDetails {
		return s.failure(req, models.PaymentFailed, apperrors.CodeMissingCardDetails, "Either cardToken or cardDetails must be provided")
	}
	if hasToken && hasDetails {
		return s.failure(req, models.PaymentFailed, apperrors.CodeValidationError, "Only one of cardToken or cardDetails may be provided")
	}

	if hasDetails {
		if ok, errs := validation.ValidateCardDetails(*req.CardDetails, s.now()); !ok {
			return s.failure(req, models.PaymentFailed, apperrors.CodeInvalidCardDetails, strings.Join(errs, "; "))
		}
	}

	result, err := s.gateway.Charge(ctx, gateway.ChargeRequest{
		Amount:       req.Amount,
		Currency:     req.Currency,
		Description:  req.Description,
		CardToken:    req.CardToken,
		Card:         req.CardDetails,
		UserID:       req.UserID,
		MerchantName: req.MerchantName,
		Category:     req.Category,
	})
	if err != nil {
		log.Printf("charge failed for user %s: %v", req.UserID, err)
		message := "Payment processing failed"
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) && gwErr.Message != "" {
			message = gwErr.Message
		}
		return s.failure(req, models.PaymentFailed, apperrors.CodePaymentError, message)
	}

	resp := &models.PaymentResponse{
		Success:           result.Approved,
		TransactionID:     result.TransactionID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Status:            result.Status,
		Message:           result.Message,
		Timestamp:         s.now().UTC(),
		CardLast4:         result.CardLast4,
		CardBrand:         result.CardBrand,
		AuthorizationCode: result.AuthorizationCode,
	}
	if !result.Approved {
		resp.ErrorCode = result.ErrorCode
		if resp.ErrorCode == "" {
			resp.ErrorCode = apperrors.CodeCardDeclined
		}
	}
	if resp.CardLast4 == "" && req.CardDetails != nil {
		resp.CardLast4 = validation.Last4(req.CardDetails.CardNumber)
		resp.CardBrand = validation.CardBrand(req.CardDetails.CardNumber)
	}

	if resp.Success && req.SaveCard && req.CardDetails != nil && s.cards != nil {
		// Best effort: a failed save never fails the charge.
		if _, err := s.cards.Tokenize(ctx, *req.CardDetails, req.UserID); err != nil {
			log.Printf("save card after charge failed for user %s: %v", req.UserID, err)
		}
	}

	return resp
}

// Refund forwards a refund request. Failures are normalized into a
// structured response, same convention as Charge.
func (s *service) Refund(ctx context.Context, req models.RefundRequest) *models.RefundResponse {
	if req.TransactionID == "" || req.Reason == "" {
		return &models.RefundResponse{
			Success:               false,
			OriginalTransactionID: req.TransactionID,
			Status:                "failed",
			Message:               "Transaction ID and reason are required",
			ErrorCode:             apperrors.CodeValidationError,
		}
	}

	result, err := s.gateway.Refund(ctx, req)
	if err != nil {
		log.Printf("refund failed for transaction %s: %v", req.TransactionID, err)
		message := "Refund processing failed"
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) && gwErr.Message != "" {
			message = gwErr.Message
		}
		return &models.RefundResponse{
			Success:               false,
			OriginalTransactionID: req.TransactionID,
			Amount:                req.Amount,
			Status:                "failed",
			Message:               message,
			ErrorCode:             apperrors.CodePaymentError,
		}
	}

	return &models.RefundResponse{
		Success:               true,
		RefundID:              result.RefundID,
		OriginalTransactionID: req.TransactionID,
		Amount:                result.Amount,
		Status:                result.Status,
		Message:               result.Message,
	}
}

// Transaction passes gateway transaction detail through unchanged.
func (s *service) Transaction(ctx context.Context, transactionID string) (map[string]any, error) {
	detail, err := s.gateway.Transaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", transactionID, err)
	}
	return detail, nil
}
