// Package main is the entry point for the gateway-proxy server. It
// validates configuration, wires the gateway driver and services, and
// starts the HTTP server with the full middleware chain.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuswallet/internal/config"
	"campuswallet/internal/gateway"
	"campuswallet/internal/handlers"
	"campuswallet/internal/repositories"
	"campuswallet/internal/repositories/cache"
	cardsvc "campuswallet/internal/services/card"
	paymentsvc "campuswallet/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const maxBodySize = 10 * 1024 * 1024 // 10 MB

func main() {
	config.LoadEnv()

	// Refuse to start with an incomplete configuration; list every
	// missing name, not just the first.
	if missing := config.MissingVars(); len(missing) > 0 {
		log.Println("ERROR: missing required environment variables:")
		for _, name := range missing {
			log.Printf("  - %s", name)
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	gw, err := newGatewayClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize gateway client: %v", err)
	}

	cardRepo := repositories.NewMemoryCardStore()
	cardService := cardsvc.NewService(gw, cardRepo)
	paymentService := paymentsvc.NewService(gw, cardService)

	app := fiber.New(fiber.Config{
		AppName:      "Campus Wallet API",
		BodyLimit:    maxBodySize,
		ErrorHandler: handlers.NewErrorHandler(config.IsProduction()),
	})

	// Middleware chain: security headers, CORS, panic recovery,
	// request logging (development only), then the rate limiter on
	// everything under /api.
	app.Use(helmet.New())

	corsCfg := cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-App-API-Key",
	}
	if cfg.AllowedOrigins != "*" {
		corsCfg.AllowCredentials = true
	}
	app.Use(cors.New(corsCfg))

	app.Use(recover.New(recover.Config{EnableStackTrace: !config.IsProduction()}))

	if !config.IsProduction() {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Use("/api", limiter.New(newLimiterConfig(cfg)))

	handlers.SetupRoutes(app, cfg, paymentService, cardService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()
	log.Printf("server listening on :%s (env=%s, gateway=%s)", cfg.Port, cfg.Env, cfg.GatewayProvider)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down gracefully...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// newLimiterConfig builds the sliding-window limiter keyed by client
// IP. With REDIS_ADDR set, counters live in Redis and are shared
// across instances; otherwise they stay in process memory.
func newLimiterConfig(cfg *config.Config) limiter.Config {
	limiterCfg := limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
		},
	}

	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.HealthCheck(ctx, client); err != nil {
			log.Printf("redis unavailable, falling back to in-memory rate limiting: %v", err)
		} else {
			limiterCfg.Storage = cache.NewStorage(client)
			log.Println("rate limiter backed by redis")
		}
	}

	return limiterCfg
}

func newGatewayClient(cfg *config.Config) (gateway.Client, error) {
	switch cfg.GatewayProvider {
	case "fiserv":
		return gateway.NewFiservClient(gateway.FiservConfig{
			BaseURL:    cfg.GatewayBaseURL,
			APIKey:     cfg.GatewayAPIKey,
			APISecret:  cfg.GatewayAPISecret,
			MerchantID: cfg.GatewayMerchantID,
			StoreID:    cfg.GatewayStoreID,
			TerminalID: cfg.GatewayTerminalID,
			Timeout:    cfg.GatewayTimeout,
		}), nil
	case "stripe":
		return gateway.NewStripeClient(cfg.GatewayAPISecret), nil
	case "omise":
		return gateway.NewOmiseClient(cfg.GatewayAPIKey, cfg.GatewayAPISecret)
	default:
		return nil, fmt.Errorf("unknown gateway provider %q", cfg.GatewayProvider)
	}
}
