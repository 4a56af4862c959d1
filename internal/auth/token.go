// Package auth provides password hashing and JWT token issuance/validation
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors
var (
	ErrTokenExpired     = errors.New("token is expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrMalformedClaims  = errors.New("token claims are malformed")
)

// Identity is the authenticated user extracted from a token
type Identity struct {
	ID       int
	Username string
	Email    string
}

// TokenGenerator handles JWT token generation and validation.
// Access and refresh tokens are signed with separate secrets
// (which may be configured to the same value) and separate lifetimes.
// It holds no mutable state and is safe for concurrent use.
type TokenGenerator struct {
	accessSecret       string
	refreshSecret      string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		accessSecret:       accessSecret,
		refreshSecret:      refreshSecret,
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// GenerateTokens generates both access and refresh tokens for a user.
// The access token carries id, username and email; the refresh token
// carries id and username only.
func (tg *TokenGenerator) GenerateTokens(identity Identity) (string, string, error) {
	accessToken, err := tg.generateAccessToken(identity)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := tg.generateRefreshToken(identity)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// generateAccessToken creates an access token with id, username and email in payload
func (tg *TokenGenerator) generateAccessToken(identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  identity.ID,
		"username": identity.Username,
		"email":    identity.Email,
		"exp":      time.Now().Add(tg.accessTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.accessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// generateRefreshToken creates a refresh token with id and username in payload
func (tg *TokenGenerator) generateRefreshToken(identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  identity.ID,
		"username": identity.Username,
		"exp":      time.Now().Add(tg.refreshTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.refreshSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the identity
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (Identity, error) {
	return tg.validate(tokenString, "access", tg.accessSecret)
}

// ValidateRefreshToken validates a refresh token and returns the identity
func (tg *TokenGenerator) ValidateRefreshToken(tokenString string) (Identity, error) {
	return tg.validate(tokenString, "refresh", tg.refreshSecret)
}

// validate parses and checks signature, expiry, token type and required claims
func (tg *TokenGenerator) validate(tokenString, tokenType, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrInvalidSignature
		default:
			return Identity{}, fmt.Errorf("%w: %s", ErrMalformedClaims, err)
		}
	}

	if !token.Valid {
		return Identity{}, ErrInvalidSignature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrMalformedClaims
	}

	// Check token type
	claimedType, ok := claims["type"].(string)
	if !ok || claimedType != tokenType {
		return Identity{}, fmt.Errorf("%w: token is not a %s token", ErrMalformedClaims, tokenType)
	}

	// Extract userID (JWT claims decode numbers as float64)
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, fmt.Errorf("%w: user_id not found in token", ErrMalformedClaims)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return Identity{}, fmt.Errorf("%w: username not found in token", ErrMalformedClaims)
	}

	// Email is only carried by access tokens
	email, _ := claims["email"].(string)

	return Identity{
		ID:       int(userID),
		Username: username,
		Email:    email,
	}, nil
}
