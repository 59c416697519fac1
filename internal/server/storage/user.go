package storage

import (
	"context"

	"github.com/avasiliev/punchclock/internal/models"
)

// UserStorage defines the user directory contract. The store, not the
// caller, enforces email uniqueness.
type UserStorage interface {
	// CreateUser persists a new user.
	// Returns ErrUserAlreadyExists if the email is taken and
	// ErrValidation if the record shape is rejected.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if no user exists.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}
