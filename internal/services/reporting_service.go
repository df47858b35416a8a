package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"worktime/internal/errors"
	"worktime/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	store     LedgerStore
	validator *validation.Validator
	clock     Clock
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(store LedgerStore, opts ...Option) ReportingService {
	o := newOptions(opts)
	return &reportingServiceImpl{
		store:     store,
		validator: validation.NewValidator(),
		clock:     o.clock,
	}
}

// MonthSummary loads and aggregates one month of the ledger
func (r *reportingServiceImpl) MonthSummary(ctx context.Context, month string) (*MonthSummary, error) {
	m, err := r.validator.ParseMonthOrCurrent(month, r.clock.Now())
	if err != nil {
		return nil, err
	}

	l, err := r.store.Load(ctx, m)
	if err != nil {
		return nil, err
	}

	return &MonthSummary{
		Month:      m,
		Records:    l.Sorted(),
		Totals:     l.Totals(),
		Skipped:    l.Skipped,
		LedgerPath: r.store.Path(m),
	}, nil
}

// ExportMonth writes the month's days as CSV with a header row
func (r *reportingServiceImpl) ExportMonth(ctx context.Context, month string, w io.Writer) (int, error) {
	summary, err := r.MonthSummary(ctx, month)
	if err != nil {
		return 0, err
	}

	rows := make([]ExportRow, 0, len(summary.Records))
	for _, record := range summary.Records {
		rows = append(rows, ExportRow{
			Date:          record.Date.String(),
			ClockIn:       record.ClockIn.String(),
			ClockOut:      record.ClockOut.String(),
			WorkedHours:   fmt.Sprintf("%.1f", record.WorkedHours),
			OvertimeHours: fmt.Sprintf("%.1f", record.OvertimeHours),
			Late:          record.IsLate(),
			Notes:         strings.Join(record.Notes, "; "),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return 0, errors.WrapError(err, errors.ErrorTypeStorage, "failed to write CSV export")
	}

	return len(rows), nil
}
