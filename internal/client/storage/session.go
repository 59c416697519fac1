// Package storage defines the client-side session store contract.
package storage

import (
	"context"
	"errors"
)

// ErrSessionNotFound indicates that no session is stored (not logged in)
var ErrSessionNotFound = errors.New("session not found")

// Session is the locally cached login state. The token is the same opaque
// bearer token the server issued; the client never inspects its contents,
// so expiry surfaces as a 401 from the server.
type Session struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	AuthToken string `json:"auth_token"`
}

// SessionStorage stores at most one session per client database.
type SessionStorage interface {
	// SaveSession stores the session, replacing any existing one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session.
	// Returns ErrSessionNotFound if none exists.
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout).
	// Returns ErrSessionNotFound if none exists.
	DeleteSession(ctx context.Context) error
}
