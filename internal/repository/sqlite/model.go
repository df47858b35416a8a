package sqlite

import "time"

// PendingClockIn is the single open clock-in row.
// ClockIn is "HH:MM" and WorkDate is "YYYY-MM-DD"; both are stored as text
// so the row stays readable with the sqlite3 shell.
type PendingClockIn struct {
	ID         int64
	ClockIn    string
	WorkDate   string
	RecordedAt time.Time
}

// pendingSlotID is the only id the pending_clock_in table accepts.
const pendingSlotID = 1
