package models

import "time"

// PunchEntry represents one punch-clock interval for a user.
// ClockOut is nil while the entry is still open.
type PunchEntry struct {
	ID       string     `json:"id"`      // UUID
	UserID   string     `json:"user_id"` // owner
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
}

// Open reports whether the entry has not been clocked out yet.
func (e *PunchEntry) Open() bool {
	return e.ClockOut == nil
}
