package utils

import (
	"errors"
	"time"

	"campuswallet/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an exchanged bearer token stays valid.
const TokenTTL = 15 * time.Minute

// GenerateAppToken mints a short-lived bearer token for a client that
// has already presented the app API key.
func GenerateAppToken(secret, clientID string) (string, error) {
	if secret == "" {
		return "", errors.New("token secret not configured")
	}

	now := time.Now()
	claims := models.AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "campus-wallet-api",
		},
		ClientID: clientID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAppToken validates a bearer token and returns its claims.
func ParseAppToken(secret, tokenStr string) (*models.AppClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.AppClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.AppClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
