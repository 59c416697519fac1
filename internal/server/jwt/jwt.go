// Package jwt issues and verifies the signed bearer tokens (HS256) that
// protected routes trust for authorization.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avasiliev/punchclock/internal/models"
)

// DefaultTTL is the token lifetime used when no override is configured.
const DefaultTTL = 6 * time.Hour

const issuer = "punchclock"

// Verification failures. The middleware collapses all of them into one
// client-facing 401; these exist for logging and tests.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token signature")
	ErrTokenMalformed = errors.New("malformed token")
)

// Claims is the public subset of a user record carried inside a token.
// It never contains the password digest.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. An empty secret is refused here so a
// misconfigured server fails at startup, never at verification time.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for the user, expiring at now+TTL.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string, returning its claims.
// Verification fails closed: algorithm mismatch, bad signature, malformed
// structure, and expiry are all rejections, never a default-accept.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
