package services

import (
	"context"
	"io"
	"time"

	"worktime/internal/domain"
	"worktime/internal/ledger"
	"worktime/internal/repository/sqlite"
	"worktime/internal/worktime"
)

// Clock supplies the local wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// LedgerStore persists computed days into the monthly ledger documents.
type LedgerStore interface {
	Path(month domain.Month) string
	Load(ctx context.Context, month domain.Month) (*ledger.Ledger, error)
	Upsert(ctx context.Context, date domain.Date, clockIn, clockOut domain.TimeOfDay, result worktime.Result) (string, error)
}

// ClockInResult is the outcome of recording a clock-in.
type ClockInResult struct {
	Pending domain.PendingClockIn
	// Replaced is the clock-in that was overwritten, if one was pending.
	Replaced *domain.PendingClockIn
}

// DayResult is a computed and stored day.
type DayResult struct {
	Record     domain.DayRecord
	Result     worktime.Result
	LedgerPath string
}

// StatusResult describes the pending clock-in, if any.
type StatusResult struct {
	Now     time.Time
	Pending *domain.PendingClockIn
	// Stale is set when the pending clock-in belongs to an earlier day.
	Stale bool
	// Projection is the calculation as if clocking out now. It is nil when
	// nothing is pending, the pending clock-in is stale, or now is not after it.
	Projection *worktime.Result
}

// MonthSummary aggregates one month of the ledger.
type MonthSummary struct {
	Month      domain.Month
	Records    []domain.DayRecord
	Totals     ledger.Totals
	Skipped    int
	LedgerPath string
}

// ExportRow is one day of a CSV export.
type ExportRow struct {
	Date          string `csv:"date"`
	ClockIn       string `csv:"clock_in"`
	ClockOut      string `csv:"clock_out"`
	WorkedHours   string `csv:"worked_hours"`
	OvertimeHours string `csv:"overtime_hours"`
	Late          bool   `csv:"late"`
	Notes         string `csv:"notes"`
}

// AttendanceService handles the clock-in / clock-out workflow
type AttendanceService interface {
	// ClockIn records a pending clock-in for today. An empty timeStr means now.
	ClockIn(ctx context.Context, timeStr string) (*ClockInResult, error)
	// ClockOut completes today's pending clock-in and stores the day.
	ClockOut(ctx context.Context, timeStr string) (*DayResult, error)
	// Status reports the pending clock-in with a projection for clocking out now.
	Status(ctx context.Context) (*StatusResult, error)
	// FixDay records a complete day directly, without touching the pending clock-in.
	FixDay(ctx context.Context, date, clockIn, clockOut string) (*DayResult, error)

	Rules() domain.Rules
}

// ReportingService handles monthly aggregation and export
type ReportingService interface {
	// MonthSummary loads a month; an empty month means the current one.
	MonthSummary(ctx context.Context, month string) (*MonthSummary, error)
	// ExportMonth writes the month as CSV and returns the number of rows.
	ExportMonth(ctx context.Context, month string, w io.Writer) (int, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	AttendanceService AttendanceService
	ReportingService  ReportingService
}

// Option configures the services.
type Option func(*options)

type options struct {
	clock               Clock
	rejectDoubleClockIn bool
}

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRejectDoubleClockIn makes a second clock-in fail instead of replacing the first.
func WithRejectDoubleClockIn(reject bool) Option {
	return func(o *options) {
		o.rejectDoubleClockIn = reject
	}
}

func newOptions(opts []Option) options {
	o := options{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewServiceContainer wires the services around one pending store and one ledger.
func NewServiceContainer(repo sqlite.Repository, store LedgerStore, rules domain.Rules, opts ...Option) *ServiceContainer {
	return &ServiceContainer{
		AttendanceService: NewAttendanceService(repo, store, rules, opts...),
		ReportingService:  NewReportingService(store, opts...),
	}
}
