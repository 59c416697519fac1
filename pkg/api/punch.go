package api

import "time"

// PunchEntry is one punch-clock interval as rendered to clients
type PunchEntry struct {
	ID       string     `json:"id"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
}

// PunchResponse is returned by POST /punchclock/in and /punchclock/out
type PunchResponse struct {
	Entry PunchEntry `json:"entry"`
}

// PunchListResponse is returned by GET /punchclock
type PunchListResponse struct {
	Entries []PunchEntry `json:"entries"`
}

// UserResponse is the stored profile minus the password digest
// (GET /users/me)
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
