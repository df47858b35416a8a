package api

import (
	"context"
	"io"

	"worktime/internal/domain"
	"worktime/internal/ledger"
	"worktime/internal/repository/sqlite"
	"worktime/internal/services"
)

// DayOutcome is a stored day together with its month's running totals.
type DayOutcome struct {
	*services.DayResult
	MonthTotals ledger.Totals
}

// BusinessAPI defines the attendance operations the command line drives
type BusinessAPI interface {
	// ========== Clock Workflow ==========

	// ClockIn records a pending clock-in for today; an empty time means now
	ClockIn(ctx context.Context, timeStr string) (*services.ClockInResult, error)

	// ClockOut completes today's pending clock-in and writes the ledger
	ClockOut(ctx context.Context, timeStr string) (*DayOutcome, error)

	// FixDay writes a complete day without touching the pending clock-in
	FixDay(ctx context.Context, date, clockIn, clockOut string) (*DayOutcome, error)

	// ========== Query Operations ==========

	// GetStatus returns the pending clock-in and a projection for clocking out now
	GetStatus(ctx context.Context) (*services.StatusResult, error)

	// GetMonthSummary returns a month's days and totals; an empty month means the current one
	GetMonthSummary(ctx context.Context, month string) (*services.MonthSummary, error)

	// ExportMonth writes a month as CSV and returns the number of days written
	ExportMonth(ctx context.Context, month string, w io.Writer) (int, error)

	// GetRules returns the rules days are computed with
	GetRules() domain.Rules
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	attendance services.AttendanceService
	reporting  services.ReportingService
}

// New wires the services around a pending store and a ledger store.
func New(repo sqlite.Repository, store services.LedgerStore, rules domain.Rules, opts ...services.Option) BusinessAPI {
	return NewBusinessAPI(services.NewServiceContainer(repo, store, rules, opts...))
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{
		attendance: container.AttendanceService,
		reporting:  container.ReportingService,
	}
}

// ========== Clock Workflow ==========

func (b *businessAPIImpl) ClockIn(ctx context.Context, timeStr string) (*services.ClockInResult, error) {
	return b.attendance.ClockIn(ctx, timeStr)
}

func (b *businessAPIImpl) ClockOut(ctx context.Context, timeStr string) (*DayOutcome, error) {
	day, err := b.attendance.ClockOut(ctx, timeStr)
	if err != nil {
		return nil, err
	}
	return b.withMonthTotals(ctx, day)
}

func (b *businessAPIImpl) FixDay(ctx context.Context, date, clockIn, clockOut string) (*DayOutcome, error) {
	day, err := b.attendance.FixDay(ctx, date, clockIn, clockOut)
	if err != nil {
		return nil, err
	}
	return b.withMonthTotals(ctx, day)
}

// withMonthTotals re-reads the month the day was written to.
func (b *businessAPIImpl) withMonthTotals(ctx context.Context, day *services.DayResult) (*DayOutcome, error) {
	summary, err := b.reporting.MonthSummary(ctx, day.Record.Date.Month().String())
	if err != nil {
		return nil, err
	}
	return &DayOutcome{DayResult: day, MonthTotals: summary.Totals}, nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetStatus(ctx context.Context) (*services.StatusResult, error) {
	return b.attendance.Status(ctx)
}

func (b *businessAPIImpl) GetMonthSummary(ctx context.Context, month string) (*services.MonthSummary, error) {
	return b.reporting.MonthSummary(ctx, month)
}

func (b *businessAPIImpl) ExportMonth(ctx context.Context, month string, w io.Writer) (int, error) {
	return b.reporting.ExportMonth(ctx, month, w)
}

func (b *businessAPIImpl) GetRules() domain.Rules {
	return b.attendance.Rules()
}
