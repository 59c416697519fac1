package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avasiliev/punchclock/internal/models"
	"github.com/avasiliev/punchclock/internal/server/storage"
)

// ClockIn opens a new punch entry for the user
func (s *Storage) ClockIn(ctx context.Context, entry *models.PunchEntry) error {
	query := `
		INSERT INTO punch_entries (id, user_id, clock_in, clock_out)
		VALUES (?, ?, ?, NULL)
	`

	_, err := s.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.ClockIn)
	if err != nil {
		// The partial unique index allows one open entry per user
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrEntryOpen
		}
		return fmt.Errorf("failed to insert punch entry: %w", err)
	}

	return nil
}

// ClockOut closes the user's open entry and returns it
func (s *Storage) ClockOut(ctx context.Context, userID string, at time.Time) (*models.PunchEntry, error) {
	query := `
		UPDATE punch_entries
		SET clock_out = ?
		WHERE user_id = ? AND clock_out IS NULL
		RETURNING id, user_id, clock_in, clock_out
	`

	entry := &models.PunchEntry{}
	var clockOut sql.NullTime

	err := s.db.QueryRowContext(ctx, query, at, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.ClockIn,
		&clockOut,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNoOpenEntry
		}
		return nil, fmt.Errorf("failed to close punch entry: %w", err)
	}

	if clockOut.Valid {
		entry.ClockOut = &clockOut.Time
	}

	return entry, nil
}

// ListEntries returns the user's punch entries, newest first
func (s *Storage) ListEntries(ctx context.Context, userID string) ([]*models.PunchEntry, error) {
	query := `
		SELECT id, user_id, clock_in, clock_out
		FROM punch_entries
		WHERE user_id = ?
		ORDER BY clock_in DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.PunchEntry
	for rows.Next() {
		entry := &models.PunchEntry{}
		var clockOut sql.NullTime

		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.ClockIn, &clockOut); err != nil {
			return nil, fmt.Errorf("failed to scan punch entry: %w", err)
		}

		if clockOut.Valid {
			entry.ClockOut = &clockOut.Time
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch entries: %w", err)
	}

	return entries, nil
}
