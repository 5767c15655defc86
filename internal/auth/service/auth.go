package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenType = "access"

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret      string
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      secret,
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

// GenerateToken creates a signed bearer token carrying the user's ID
func (tg *TokenGenerator) GenerateToken(userID int) (string, error) {
	now := tg.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(tg.tokenExpiry).Unix(),
		"iat":     now.Unix(),
		"type":    accessTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a token and returns the user ID it carries
func (tg *TokenGenerator) ValidateToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(tg.now))

	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return 0, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != accessTokenType {
		return 0, fmt.Errorf("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("user_id not found in token")
	}

	return int(userID), nil
}
