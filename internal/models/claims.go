package models

import "github.com/golang-jwt/jwt/v5"

// AppClaims are the claims carried by tokens minted at /api/auth/token.
type AppClaims struct {
	jwt.RegisteredClaims
	ClientID string `json:"clientId,omitempty"`
}
