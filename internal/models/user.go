package models

import "time"

// User represents a registered account.
// PasswordHash is a bcrypt digest (salt and cost embedded) and must never
// appear in any API response.
type User struct {
	ID           string    `json:"id"`       // UUID
	Email        string    `json:"email"`    // unique, case-sensitive identifier
	Username     string    `json:"username"` // display name
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
