package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"campuswallet/internal/config"
	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/middleware"
	"campuswallet/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAppKey = "test-app-key"

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Charge(ctx context.Context, req models.PaymentRequest) *models.PaymentResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(*models.PaymentResponse)
}

func (m *MockPaymentService) Refund(ctx context.Context, req models.RefundRequest) *models.RefundResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(*models.RefundResponse)
}

func (m *MockPaymentService) Transaction(ctx context.Context, transactionID string) (map[string]any, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) Tokenize(ctx context.Context, card models.CardDetails, userID string) (*models.TokenizeCardResponse, error) {
	args := m.Called(ctx, card, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenizeCardResponse), args.Error(1)
}

func (m *MockCardService) List(ctx context.Context, userID string) ([]models.SavedCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedCard), args.Error(1)
}

func (m *MockCardService) Delete(ctx context.Context, userID, cardID string) error {
	return m.Called(ctx, userID, cardID).Error(0)
}

func (m *MockCardService) SetDefault(ctx context.Context, userID, cardID string) error {
	return m.Called(ctx, userID, cardID).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "3000",
		Env:             "test",
		AppAPIKey:       testAppKey,
		JWTSecret:       testAppKey,
		RateLimitWindow: time.Minute,
		RateLimitMax:    100,
	}
}

// newTestApp mirrors the production wiring: limiter on /api, then the
// route tree with the auth gate.
func newTestApp(paymentSvc *MockPaymentService, cardSvc *MockCardService, rateLimitMax int) *fiber.App {
	cfg := testConfig()
	cfg.RateLimitMax = rateLimitMax

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(true)})
	app.Use("/api", limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
		},
	}))
	SetupRoutes(app, cfg, paymentSvc, cardSvc)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, authed bool) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set(middleware.HeaderAPIKey, testAppKey)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestPublicRoutes(t *testing.T) {
	app := newTestApp(new(MockPaymentService), new(MockCardService), 100)

	t.Run("health is open", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/health", "", false)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, serviceName, body["service"])
	})

	t.Run("api info is open", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api", "", false)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unknown path falls through to 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/nope", "", false)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Endpoint not found", body["message"])
		assert.Equal(t, "/nope", body["path"])
	})
}

func TestAuthGateOnProtectedRoutes(t *testing.T) {
	paymentSvc := new(MockPaymentService)
	app := newTestApp(paymentSvc, new(MockCardService), 100)

	resp := doRequest(t, app, http.MethodPost, "/api/payments/charge", `{}`, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, apperrors.CodeMissingAPIKey, body["errorCode"])
	paymentSvc.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestChargeRoute(t *testing.T) {
	paymentSvc := new(MockPaymentService)
	paymentSvc.On("Charge", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
		Success:       true,
		TransactionID: "txn-1",
		Status:        models.PaymentCompleted,
	})

	app := newTestApp(paymentSvc, new(MockCardService), 100)

	t.Run("valid charge", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/payments/charge", `{
			"amount": 25,
			"currency": "USD",
			"userId": "user-1",
			"merchantName": "Campus Cafe",
			"cardToken": "tok_123"
		}`, true)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "txn-1", body["transactionId"])
	})

	t.Run("invalid payload stops at the validator", func(t *testing.T) {
		before := len(paymentSvc.Calls)
		resp := doRequest(t, app, http.MethodPost, "/api/payments/charge", `{"amount": -1}`, true)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Len(t, paymentSvc.Calls, before)
	})
}

func TestRefundRoute(t *testing.T) {
	t.Run("gateway failure maps to 502", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		paymentSvc.On("Refund", mock.Anything, mock.Anything).Return(&models.RefundResponse{
			Success:   false,
			Status:    "failed",
			Message:   "processor unavailable",
			ErrorCode: apperrors.CodePaymentError,
		})
		app := newTestApp(paymentSvc, new(MockCardService), 100)

		resp := doRequest(t, app, http.MethodPost, "/api/payments/refund",
			`{"transactionId": "txn-1", "reason": "duplicate"}`, true)

		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, apperrors.CodePaymentError, body["errorCode"])
	})

	t.Run("successful refund", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		paymentSvc.On("Refund", mock.Anything, mock.Anything).Return(&models.RefundResponse{
			Success:  true,
			RefundID: "ref-1",
			Status:   "completed",
		})
		app := newTestApp(paymentSvc, new(MockCardService), 100)

		resp := doRequest(t, app, http.MethodPost, "/api/payments/refund",
			`{"transactionId": "txn-1", "reason": "duplicate"}`, true)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRateLimiter(t *testing.T) {
	paymentSvc := new(MockPaymentService)
	paymentSvc.On("Charge", mock.Anything, mock.Anything).Return(&models.PaymentResponse{
		Success: true,
		Status:  models.PaymentCompleted,
	})

	app := newTestApp(paymentSvc, new(MockCardService), 3)

	body := `{
		"amount": 25,
		"currency": "USD",
		"userId": "user-1",
		"merchantName": "Campus Cafe",
		"cardToken": "tok_123"
	}`

	for i := 0; i < 3; i++ {
		resp := doRequest(t, app, http.MethodPost, "/api/payments/charge", body, true)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(2-i), resp.Header.Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
	}

	// The (N+1)-th request is rejected before any business logic runs;
	// the rejection carries Retry-After instead of the quota headers.
	resp := doRequest(t, app, http.MethodPost, "/api/payments/charge", body, true)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Len(t, paymentSvc.Calls, 3)
}

func TestCardRoutes(t *testing.T) {
	t.Run("list requires userId", func(t *testing.T) {
		app := newTestApp(new(MockPaymentService), new(MockCardService), 100)
		resp := doRequest(t, app, http.MethodGet, "/api/cards/list", "", true)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list returns cards", func(t *testing.T) {
		cardSvc := new(MockCardService)
		cardSvc.On("List", mock.Anything, "user-1").Return([]models.SavedCard{
			{ID: "a", UserID: "user-1", Last4: "1111", IsDefault: true},
		}, nil)
		app := newTestApp(new(MockPaymentService), cardSvc, 100)

		resp := doRequest(t, app, http.MethodGet, "/api/cards/list?userId=user-1", "", true)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		cards, ok := body["cards"].([]any)
		require.True(t, ok)
		assert.Len(t, cards, 1)
	})

	t.Run("delete not-found maps to 404", func(t *testing.T) {
		cardSvc := new(MockCardService)
		cardSvc.On("Delete", mock.Anything, "user-1", "nope").Return(apperrors.ErrCardNotFound)
		app := newTestApp(new(MockPaymentService), cardSvc, 100)

		resp := doRequest(t, app, http.MethodDelete, "/api/cards/nope?userId=user-1", "", true)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete wrong owner maps to 403", func(t *testing.T) {
		cardSvc := new(MockCardService)
		cardSvc.On("Delete", mock.Anything, "user-2", "a").Return(apperrors.ErrCardNotOwned)
		app := newTestApp(new(MockPaymentService), cardSvc, 100)

		resp := doRequest(t, app, http.MethodDelete, "/api/cards/a?userId=user-2", "", true)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("set default", func(t *testing.T) {
		cardSvc := new(MockCardService)
		cardSvc.On("SetDefault", mock.Anything, "user-1", "b").Return(nil)
		app := newTestApp(new(MockPaymentService), cardSvc, 100)

		resp := doRequest(t, app, http.MethodPost, "/api/cards/set-default",
			`{"cardId": "b", "userId": "user-1"}`, true)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		cardSvc.AssertExpectations(t)
	})
}

func TestTokenExchange(t *testing.T) {
	app := newTestApp(new(MockPaymentService), new(MockCardService), 100)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/token", "", true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
}
