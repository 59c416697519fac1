// Package apperr defines the typed failure taxonomy shared by all request
// flows and its single mapping to HTTP status codes.
package apperr

import "net/http"

// Kind classifies a request failure.
type Kind int

const (
	// KindInvalidInput marks a malformed client request (missing or
	// ill-formed fields). Never retried.
	KindInvalidInput Kind = iota
	// KindConflict marks an identifier collision, detected locally or
	// surfaced as a duplicate-key failure from the store.
	KindConflict
	// KindValidationFailed marks a store-side schema rejection.
	KindValidationFailed
	// KindUnauthorized covers bad credentials and bad/expired/forged
	// tokens. Deliberately uninformative to the client.
	KindUnauthorized
	// KindInternal marks an unexpected store or infrastructure failure.
	KindInternal
)

// Error is a failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Status maps a failure kind to its HTTP status code. The mapping lives
// here, once, so handlers never branch on numeric codes.
func Status(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindValidationFailed:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
