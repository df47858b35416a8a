package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanPendingClockIn scans the pending clock-in row.
func ScanPendingClockIn(scanner Scanner) (*PendingClockIn, error) {
	p := &PendingClockIn{}
	var recordedAt string

	err := scanner.Scan(
		&p.ID,
		&p.ClockIn,
		&p.WorkDate,
		&recordedAt,
	)
	if err != nil {
		return nil, err
	}

	p.RecordedAt, err = ParseTimeFromDB(recordedAt)
	if err != nil {
		return nil, err
	}

	return p, nil
}
