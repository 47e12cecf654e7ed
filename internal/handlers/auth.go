package handlers

import (
	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/utils"
	"campuswallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	jwtSecret string
}

func NewAuthHandler(jwtSecret string) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret}
}

// IssueToken exchanges the app API key (already checked by the auth
// middleware) for a short-lived bearer token, so clients do not have
// to replay the long-lived secret on every request.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	token, err := utils.GenerateAppToken(h.jwtSecret, c.IP())
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to issue token", apperrors.CodeInternalError)
	}

	return response.Success(c, fiber.Map{
		"token":     token,
		"expiresIn": int(utils.TokenTTL.Seconds()),
	})
}
