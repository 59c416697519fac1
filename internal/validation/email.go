package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern defines the accepted email shape: a local part, an @, and a
// domain whose last segment (TLD) is at least 2 characters.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

const (
	// MaxEmailLen caps stored identifiers
	MaxEmailLen = 254
	// MaxUsernameLen caps display names
	MaxUsernameLen = 64
)

// ValidateEmail checks that email is non-empty and matches EmailPattern.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("provide a valid email address")
	}

	return nil
}

// ValidateUsername checks the display name for presence and length only.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	return nil
}
