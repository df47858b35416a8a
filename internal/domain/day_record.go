package domain

import (
	"math"
	"regexp"
	"time"
)

var lateNotePattern = regexp.MustCompile(`(?i)\blate\b`)

// DayRecord is the computed attendance for a single day.
// This is a pure domain model; the ledger package owns its persisted form.
type DayRecord struct {
	Date          Date
	ClockIn       TimeOfDay
	ClockOut      TimeOfDay
	WorkedHours   float64
	OvertimeHours float64
	Notes         []string
}

// NewDayRecord builds a record with hours rounded to the one decimal the
// ledger keeps, so a rendered record parses back to the same values.
func NewDayRecord(date Date, clockIn, clockOut TimeOfDay, workedHours, overtimeHours float64, notes []string) DayRecord {
	return DayRecord{
		Date:          date,
		ClockIn:       clockIn,
		ClockOut:      clockOut,
		WorkedHours:   RoundHours(workedHours),
		OvertimeHours: RoundHours(overtimeHours),
		Notes:         append([]string(nil), notes...),
	}
}

// IsLate reports whether any note mentions lateness.
func (r DayRecord) IsLate() bool {
	for _, note := range r.Notes {
		if lateNotePattern.MatchString(note) {
			return true
		}
	}
	return false
}

// RoundHours rounds to one decimal place.
func RoundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// PendingClockIn is an open clock-in awaiting its clock-out.
type PendingClockIn struct {
	Time       TimeOfDay
	Date       Date
	RecordedAt time.Time
}
