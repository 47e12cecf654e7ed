package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Config holds the full server configuration.
type Config struct {
	Port string
	Env  string

	GatewayProvider   string
	GatewayAPIKey     string
	GatewayAPISecret  string
	GatewayMerchantID string
	GatewayStoreID    string
	GatewayTerminalID string
	GatewayBaseURL    string
	GatewayTimeout    time.Duration

	AppAPIKey string
	JWTSecret string

	AllowedOrigins  string
	RateLimitWindow time.Duration
	RateLimitMax    int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// requiredVars must all be set for the server to start.
var requiredVars = []string{
	"GATEWAY_API_KEY",
	"GATEWAY_API_SECRET",
	"GATEWAY_MERCHANT_ID",
	"GATEWAY_STORE_ID",
	"GATEWAY_TERMINAL_ID",
	"GATEWAY_BASE_URL",
	"APP_API_KEY",
}

// MissingVars returns the names of required variables that are unset.
func MissingVars() []string {
	var missing []string
	for _, name := range requiredVars {
		if GetEnv(name, "") == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Load builds a Config from the environment. It fails with the full
// list of missing required variables, never just the first.
func Load() (*Config, error) {
	if missing := MissingVars(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Port:              GetEnv("PORT", "3000"),
		Env:               GetEnv("ENV", "development"),
		GatewayProvider:   GetEnv("GATEWAY_PROVIDER", "fiserv"),
		GatewayAPIKey:     GetEnv("GATEWAY_API_KEY", ""),
		GatewayAPISecret:  GetEnv("GATEWAY_API_SECRET", ""),
		GatewayMerchantID: GetEnv("GATEWAY_MERCHANT_ID", ""),
		GatewayStoreID:    GetEnv("GATEWAY_STORE_ID", ""),
		GatewayTerminalID: GetEnv("GATEWAY_TERMINAL_ID", ""),
		GatewayBaseURL:    GetEnv("GATEWAY_BASE_URL", ""),
		GatewayTimeout:    GetDurationEnv("GATEWAY_TIMEOUT", 30*time.Second),
		AppAPIKey:         GetEnv("APP_API_KEY", ""),
		JWTSecret:         GetEnv("JWT_SECRET", ""),
		AllowedOrigins:    GetEnv("ALLOWED_ORIGINS", "*"),
		RateLimitWindow:   GetDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:      GetIntEnv("RATE_LIMIT_MAX", 100),
		RedisAddr:         GetEnv("REDIS_ADDR", ""),
		RedisPassword:     GetEnv("REDIS_PASSWORD", ""),
		RedisDB:           GetIntEnv("REDIS_DB", 0),
	}

	// Bearer tokens are signed with the app key unless a dedicated
	// secret is configured.
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.AppAPIKey
	}

	return cfg, nil
}
