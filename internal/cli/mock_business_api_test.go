package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"worktime/internal/api"
	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/ledger"
	"worktime/internal/services"
	"worktime/internal/worktime"
)

// mockBusinessAPI implements the BusinessAPI interface for testing. It keeps
// one pending clock-in and the stored days in memory.
type mockBusinessAPI struct {
	now     time.Time
	rules   domain.Rules
	pending *domain.PendingClockIn
	days    map[domain.Date]domain.DayRecord
	skipped int
	err     error
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI(now time.Time) *mockBusinessAPI {
	return &mockBusinessAPI{
		now:   now,
		rules: domain.DefaultRules(),
		days:  make(map[domain.Date]domain.DayRecord),
	}
}

func (m *mockBusinessAPI) parseTime(s string) (domain.TimeOfDay, error) {
	if s == "" {
		return domain.TimeOfDayFromTime(m.now), nil
	}
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		return 0, errors.NewInvalidInputError("time", s, "expected HH:MM")
	}
	return t, nil
}

func (m *mockBusinessAPI) ClockIn(ctx context.Context, timeStr string) (*services.ClockInResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, err := m.parseTime(timeStr)
	if err != nil {
		return nil, err
	}

	result := &services.ClockInResult{
		Pending:  domain.PendingClockIn{Time: t, Date: domain.DateOf(m.now), RecordedAt: m.now},
		Replaced: m.pending,
	}
	pending := result.Pending
	m.pending = &pending
	return result, nil
}

func (m *mockBusinessAPI) ClockOut(ctx context.Context, timeStr string) (*api.DayOutcome, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.pending == nil {
		return nil, errors.NewNotFoundError("pending clock-in", "")
	}
	out, err := m.parseTime(timeStr)
	if err != nil {
		return nil, err
	}
	if out <= m.pending.Time {
		return nil, errors.NewClockOrderError(m.pending.Time.String(), out.String())
	}

	outcome := m.store(m.pending.Date, m.pending.Time, out)
	m.pending = nil
	return outcome, nil
}

func (m *mockBusinessAPI) FixDay(ctx context.Context, date, clockIn, clockOut string) (*api.DayOutcome, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, errors.NewInvalidInputError("date", date, "expected YYYY-MM-DD")
	}
	in, err := m.parseTime(clockIn)
	if err != nil {
		return nil, err
	}
	out, err := m.parseTime(clockOut)
	if err != nil {
		return nil, err
	}
	if out <= in {
		return nil, errors.NewClockOrderError(in.String(), out.String())
	}
	return m.store(d, in, out), nil
}

func (m *mockBusinessAPI) store(date domain.Date, in, out domain.TimeOfDay) *api.DayOutcome {
	result := worktime.NewCalculator(m.rules).Calculate(in, out)
	record := result.Record(date, in, out)
	m.days[date] = record

	return &api.DayOutcome{
		DayResult: &services.DayResult{
			Record:     record,
			Result:     result,
			LedgerPath: fmt.Sprintf("/ledger/%s.md", date.Month()),
		},
		MonthTotals: ledger.ComputeTotals(m.monthDays(date.Month())),
	}
}

func (m *mockBusinessAPI) monthDays(month domain.Month) map[domain.Date]domain.DayRecord {
	days := make(map[domain.Date]domain.DayRecord)
	for date, record := range m.days {
		if month.Contains(date) {
			days[date] = record
		}
	}
	return days
}

func (m *mockBusinessAPI) GetStatus(ctx context.Context) (*services.StatusResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	status := &services.StatusResult{Now: m.now, Pending: m.pending}
	if m.pending == nil {
		return status, nil
	}
	if m.pending.Date != domain.DateOf(m.now) {
		status.Stale = true
		return status, nil
	}
	now := domain.TimeOfDayFromTime(m.now)
	if now > m.pending.Time {
		projection := worktime.NewCalculator(m.rules).Calculate(m.pending.Time, now)
		status.Projection = &projection
	}
	return status, nil
}

func (m *mockBusinessAPI) GetMonthSummary(ctx context.Context, month string) (*services.MonthSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	mo := domain.MonthOf(m.now)
	if month != "" {
		parsed, err := domain.ParseMonth(month)
		if err != nil {
			return nil, errors.NewInvalidInputError("month", month, "expected YYYY-MM")
		}
		mo = parsed
	}

	l := ledger.New(mo)
	for _, record := range m.monthDays(mo) {
		l.Upsert(record)
	}
	return &services.MonthSummary{
		Month:      mo,
		Records:    l.Sorted(),
		Totals:     l.Totals(),
		Skipped:    m.skipped,
		LedgerPath: fmt.Sprintf("/ledger/%s.md", mo),
	}, nil
}

func (m *mockBusinessAPI) ExportMonth(ctx context.Context, month string, w io.Writer) (int, error) {
	summary, err := m.GetMonthSummary(ctx, month)
	if err != nil {
		return 0, err
	}
	fmt.Fprintln(w, "date,clock_in,clock_out")
	for _, r := range summary.Records {
		fmt.Fprintf(w, "%s,%s,%s\n", r.Date, r.ClockIn, r.ClockOut)
	}
	return len(summary.Records), nil
}

func (m *mockBusinessAPI) GetRules() domain.Rules {
	return m.rules
}

// setupTestAppWithMockBusinessAPI returns an app over a mock API with output captured
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mockAPI := newMockBusinessAPI(time.Date(2026, 10, 17, 19, 37, 0, 0, time.Local))
	out := &bytes.Buffer{}
	return NewApp(mockAPI, out), mockAPI, out
}
