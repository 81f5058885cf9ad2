package shared

import "github.com/golang-jwt/jwt/v5"

// shared types across the application

// AuthClaims is the payload of a bearer token issued on confirmation.
type AuthClaims struct {
	UserID   string `json:"user_id"`  // user identifier(UUID)
	Username string `json:"username"` // username at issue time
	jwt.RegisteredClaims
}
