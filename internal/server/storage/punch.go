package storage

import (
	"context"
	"time"

	"github.com/avasiliev/punchclock/internal/models"
)

// PunchStorage defines persistence for punch-clock entries.
type PunchStorage interface {
	// ClockIn opens a new entry for the user.
	// Returns ErrEntryOpen if the user already has an open entry.
	ClockIn(ctx context.Context, entry *models.PunchEntry) error

	// ClockOut closes the user's open entry at the given instant and
	// returns it. Returns ErrNoOpenEntry if nothing is open.
	ClockOut(ctx context.Context, userID string, at time.Time) (*models.PunchEntry, error)

	// ListEntries returns the user's entries, newest first.
	ListEntries(ctx context.Context, userID string) ([]*models.PunchEntry, error)
}
