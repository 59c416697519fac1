// Package crypto provides password hashing for the server.
//
// Digests are produced with bcrypt, so the salt and cost factor are embedded
// in the digest itself and verification needs no side-channel lookup.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost factor used for new digests.
const HashCost = 10

// HashPassword hashes a plaintext password with a fresh random salt.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
// Any mismatch or malformed digest yields false; it never panics.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
