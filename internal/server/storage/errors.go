package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that the user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a unique-constraint violation on the
	// email column. This is the authoritative conflict signal: two
	// concurrent registrations can both pass the existence pre-check.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrValidation indicates that the store rejected the record shape
	ErrValidation = errors.New("record validation failed")

	// ErrEntryNotFound indicates that no punch entry matched
	ErrEntryNotFound = errors.New("punch entry not found")

	// ErrEntryOpen indicates a clock-in while an entry is already open
	ErrEntryOpen = errors.New("punch entry already open")

	// ErrNoOpenEntry indicates a clock-out with no open entry
	ErrNoOpenEntry = errors.New("no open punch entry")
)
