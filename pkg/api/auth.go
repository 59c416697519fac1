// Package api holds the request/response DTOs shared by the server and the
// CLI client.
package api

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Email    string `json:"email"`    // unique identifier
	Password string `json:"password"` // plaintext, never persisted
	Username string `json:"username"` // display name
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the bearer token issued on signup and login
type AuthResponse struct {
	AuthToken string `json:"authToken"`
}

// VerifyResponse echoes the claims of a valid token (GET /auth/verify)
type VerifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ErrorResponse is the uniform failure body
type ErrorResponse struct {
	Message string `json:"message"`
}
