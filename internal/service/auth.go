package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeAccess is the expected token type for access tokens.
const TokenTypeAccess = "access"

// Claims represents the JWT claims structure issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// AuthService handles JWT token validation.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new AuthService with the given JWT secret.
func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret)}
}

// ValidateToken validates a JWT token and returns the resolved user id.
func (a *AuthService) ValidateToken(tokenStr string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid or expired token")
	}
	if claims.TokenType != TokenTypeAccess {
		return uuid.Nil, errors.New("access token required")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, errors.New("token missing user id")
	}
	return userID, nil
}
