// Package service provides JWT token generation and validation for admin sessions
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims holds the identity carried by an admin token
type AdminClaims struct {
	AdminID int
	Email   string
	Role    string
}

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// GenerateToken creates a signed admin token carrying id, email and role
func (tg *TokenGenerator) GenerateToken(adminID int, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":    adminID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(tg.tokenExpiry).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates an admin token and returns its claims
func (tg *TokenGenerator) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	// JWT claims decode numbers as float64
	adminID, ok := claims["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("id not found in token")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("email not found in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("role not found in token")
	}

	return &AdminClaims{
		AdminID: int(adminID),
		Email:   email,
		Role:    role,
	}, nil
}
