// Package middleware provides the request gates that run before any
// handler: API-key authentication and per-route payload validation.
// Each gate short-circuits with a structured error envelope; nothing
// reaches the gateway once a gate fails.
package middleware

import (
	"crypto/subtle"
	"strings"

	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/utils"
	"campuswallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// HeaderAPIKey is the shared-secret header every protected route
// requires.
const HeaderAPIKey = "X-App-API-Key"

// AuthMiddleware authenticates app clients. It accepts the static API
// key or a short-lived bearer token previously exchanged for it.
type AuthMiddleware struct {
	apiKey    string
	jwtSecret string
}

func NewAuthMiddleware(apiKey, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{apiKey: apiKey, jwtSecret: jwtSecret}
}

// Handler gates a request: missing credential is 401 MISSING_API_KEY,
// a mismatched key is 403 INVALID_API_KEY.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	apiKey := c.Get(HeaderAPIKey)
	if apiKey == "" {
		if token, ok := bearerToken(c); ok {
			claims, err := utils.ParseAppToken(m.jwtSecret, token)
			if err != nil {
				return response.Error(c, fiber.StatusUnauthorized, "Invalid or expired token", apperrors.CodeAuthError)
			}
			c.Locals("clientId", claims.ClientID)
			return c.Next()
		}
		return response.Error(c, fiber.StatusUnauthorized, "API key is required", apperrors.CodeMissingAPIKey)
	}

	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.apiKey)) != 1 {
		return response.Error(c, fiber.StatusForbidden, "Invalid API key", apperrors.CodeInvalidAPIKey)
	}

	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}
