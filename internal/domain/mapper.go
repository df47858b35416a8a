package domain

import (
	"fmt"

	"worktime/internal/repository/sqlite"
)

// PendingClockInMapper handles conversion between domain and database pending clock-in models.
type PendingClockInMapper struct{}

// NewPendingClockInMapper creates a new PendingClockInMapper instance.
func NewPendingClockInMapper() *PendingClockInMapper {
	return &PendingClockInMapper{}
}

// ToDatabase converts a domain PendingClockIn to its database row.
func (m *PendingClockInMapper) ToDatabase(p PendingClockIn) sqlite.PendingClockIn {
	return sqlite.PendingClockIn{
		ClockIn:    p.Time.String(),
		WorkDate:   p.Date.String(),
		RecordedAt: p.RecordedAt,
	}
}

// FromDatabase converts a database row to a domain PendingClockIn.
// Rows are written by ToDatabase, so a parse failure means the state file was edited by hand.
func (m *PendingClockInMapper) FromDatabase(row sqlite.PendingClockIn) (PendingClockIn, error) {
	clockIn, err := ParseTimeOfDay(row.ClockIn)
	if err != nil {
		return PendingClockIn{}, fmt.Errorf("pending clock-in time: %w", err)
	}
	date, err := ParseDate(row.WorkDate)
	if err != nil {
		return PendingClockIn{}, fmt.Errorf("pending clock-in date: %w", err)
	}
	return PendingClockIn{
		Time:       clockIn,
		Date:       date,
		RecordedAt: row.RecordedAt,
	}, nil
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	PendingClockIn *PendingClockInMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		PendingClockIn: NewPendingClockInMapper(),
	}
}
