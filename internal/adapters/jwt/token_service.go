package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "listing-bff"

// TokenService - реализация TokenServicePort на JWT HS256.
type TokenService struct {
	signingKey []byte
	now        func() time.Time
}

func NewTokenService(signingKey string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenService{signingKey: []byte(signingKey), now: time.Now}, nil
}

// sessionClaims - идентификатор сессии лежит в стандартном поле sub
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Issue создает токен сессии со сроком жизни ttl.
func (s *TokenService) Issue(ctx context.Context, sessionID string, ttl time.Duration) (string, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "Issue",
	})

	now := s.now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		serviceLogger.Error("Failed to sign token", err, nil)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок и возвращает идентификатор сессии.
func (s *TokenService) Parse(ctx context.Context, tokenString string) (string, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "Parse",
	})

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			serviceLogger.Warn("Session token has expired", nil)
		} else {
			serviceLogger.Warn("Invalid session token", port.Fields{"error": err.Error()})
		}
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		serviceLogger.Error("Token was parsed without error, but claims are unusable", nil, nil)
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
