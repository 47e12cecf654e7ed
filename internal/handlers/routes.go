package handlers

import (
	"campuswallet/internal/config"
	"campuswallet/internal/middleware"
	"campuswallet/internal/services/card"
	"campuswallet/internal/services/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the full HTTP surface. /health and /api are
// open; everything under /api/... requires the app credential.
func SetupRoutes(app *fiber.App, cfg *config.Config, paymentSvc payment.Service, cardSvc card.Service) {
	paymentHandler := NewPaymentHandler(paymentSvc)
	cardHandler := NewCardHandler(cardSvc)
	healthHandler := NewHealthHandler(cfg)
	authHandler := NewAuthHandler(cfg.JWTSecret)

	// Public routes. GET /api is registered before the authenticated
	// group so the metadata route stays open.
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/api", healthHandler.APIInfo)

	auth := middleware.NewAuthMiddleware(cfg.AppAPIKey, cfg.JWTSecret)
	api := app.Group("/api", auth.Handler)

	api.Post("/auth/token", authHandler.IssueToken)

	payments := api.Group("/payments")
	payments.Post("/charge", middleware.ValidatePaymentRequest, paymentHandler.Charge)
	payments.Post("/refund", middleware.ValidateRefundRequest, paymentHandler.Refund)
	payments.Get("/transaction/:id", paymentHandler.GetTransaction)

	cards := api.Group("/cards")
	cards.Post("/tokenize", middleware.ValidateCardDetails, cardHandler.Tokenize)
	cards.Get("/list", cardHandler.List)
	cards.Post("/set-default", cardHandler.SetDefault)
	cards.Delete("/:id", cardHandler.Delete)

	// 404 fallback
	app.Use(NotFound)
}
