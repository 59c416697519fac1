package handlers

import (
	"context"

	"github.com/avasiliev/punchclock/internal/server/jwt"
)

type contextKey int

const claimsKey contextKey = iota

// WithClaims returns a context carrying verified token claims.
// Used by the auth middleware after successful verification.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extracts the verified claims attached by the auth
// middleware. Handlers behind the middleware can rely on ok being true.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	return claims, ok
}
