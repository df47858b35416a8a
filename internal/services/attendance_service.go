package services

import (
	"context"
	"log/slog"

	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/logging"
	"worktime/internal/repository/sqlite"
	"worktime/internal/validation"
	"worktime/internal/worktime"
)

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	repo                sqlite.Repository
	store               LedgerStore
	calculator          *worktime.Calculator
	mapper              *domain.Mapper
	validator           *validation.Validator
	attendanceValidator *validation.AttendanceValidator
	clock               Clock
	rejectDoubleClockIn bool
	logger              *slog.Logger
}

// NewAttendanceService creates a new AttendanceService instance
func NewAttendanceService(repo sqlite.Repository, store LedgerStore, rules domain.Rules, opts ...Option) AttendanceService {
	o := newOptions(opts)
	return &attendanceServiceImpl{
		repo:                repo,
		store:               store,
		calculator:          worktime.NewCalculator(rules),
		mapper:              domain.NewMapper(),
		validator:           validation.NewValidator(),
		attendanceValidator: validation.NewAttendanceValidator(),
		clock:               o.clock,
		rejectDoubleClockIn: o.rejectDoubleClockIn,
		logger:              logging.Logger().With("component", "attendance"),
	}
}

func (s *attendanceServiceImpl) Rules() domain.Rules {
	return s.calculator.Rules()
}

// ClockIn records a pending clock-in for today
func (s *attendanceServiceImpl) ClockIn(ctx context.Context, timeStr string) (*ClockInResult, error) {
	now := s.clock.Now()

	clockIn, err := s.validator.ParseClockTimeOrNow("time", timeStr, now)
	if err != nil {
		return nil, err
	}

	if s.rejectDoubleClockIn {
		existing, err := s.peekPending(ctx)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.NewAlreadyClockedInError(existing.Time.String(), existing.Date.String())
		}
	}

	pending := domain.PendingClockIn{
		Time:       clockIn,
		Date:       domain.DateOf(now),
		RecordedAt: now,
	}
	row := s.mapper.PendingClockIn.ToDatabase(pending)
	replacedRow, err := s.repo.SetPending(ctx, &row)
	if err != nil {
		return nil, err
	}

	result := &ClockInResult{Pending: pending}
	if replacedRow != nil {
		replaced, err := s.mapper.PendingClockIn.FromDatabase(*replacedRow)
		if err != nil {
			return nil, errors.NewStorageError("decode replaced clock-in", err)
		}
		result.Replaced = &replaced
		s.logger.Debug("replaced pending clock-in", "previous", replaced.Time.String(), "date", replaced.Date.String())
	}

	s.logger.Debug("clock-in recorded", "time", pending.Time.String(), "date", pending.Date.String())
	return result, nil
}

// ClockOut completes today's pending clock-in
func (s *attendanceServiceImpl) ClockOut(ctx context.Context, timeStr string) (*DayResult, error) {
	now := s.clock.Now()

	// 1. A clock-in must be pending
	pending, err := s.peekPending(ctx)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, errors.NewNotFoundError("pending clock-in", "")
	}

	// 2. It must belong to today
	today := domain.DateOf(now)
	if pending.Date != today {
		return nil, errors.NewStaleClockInError(pending.Date.String(), today.String())
	}

	// 3. The clock-out must follow it
	clockOut, err := s.validator.ParseClockTimeOrNow("time", timeStr, now)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateClockOrder(pending.Time, clockOut); err != nil {
		return nil, err
	}

	// 4. Store the day, then release the pending slot
	day, err := s.record(ctx, pending.Date, pending.Time, clockOut)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearPending(ctx); err != nil {
		return nil, err
	}

	return day, nil
}

// Status reports the pending clock-in
func (s *attendanceServiceImpl) Status(ctx context.Context) (*StatusResult, error) {
	now := s.clock.Now()
	status := &StatusResult{Now: now}

	pending, err := s.peekPending(ctx)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return status, nil
	}

	status.Pending = pending
	status.Stale = pending.Date != domain.DateOf(now)

	current := domain.TimeOfDayFromTime(now)
	if !status.Stale && current > pending.Time {
		projection := s.calculator.Calculate(pending.Time, current)
		status.Projection = &projection
	}

	return status, nil
}

// FixDay records a complete day
func (s *attendanceServiceImpl) FixDay(ctx context.Context, date, clockIn, clockOut string) (*DayResult, error) {
	input, err := s.attendanceValidator.ValidateFixDay(date, clockIn, clockOut, s.clock.Now())
	if err != nil {
		return nil, err
	}

	return s.record(ctx, input.Date, input.ClockIn, input.ClockOut)
}

func (s *attendanceServiceImpl) record(ctx context.Context, date domain.Date, clockIn, clockOut domain.TimeOfDay) (*DayResult, error) {
	result := s.calculator.Calculate(clockIn, clockOut)

	path, err := s.store.Upsert(ctx, date, clockIn, clockOut, result)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("day recorded", "date", date.String(), "worked", result.WorkedHours, "overtime", result.OvertimeHours, "path", path)
	return &DayResult{
		Record:     result.Record(date, clockIn, clockOut),
		Result:     result,
		LedgerPath: path,
	}, nil
}

// peekPending returns the pending clock-in, or nil when the slot is empty.
func (s *attendanceServiceImpl) peekPending(ctx context.Context) (*domain.PendingClockIn, error) {
	row, err := s.repo.PeekPending(ctx)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pending, err := s.mapper.PendingClockIn.FromDatabase(*row)
	if err != nil {
		return nil, errors.NewStorageError("decode pending clock-in", err)
	}
	return &pending, nil
}
