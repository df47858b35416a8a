package validation

import (
	"strings"
	"time"

	"worktime/internal/domain"
	"worktime/internal/errors"
)

// Validator parses and checks user supplied attendance values
type Validator struct {
	maxPastYears int
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{maxPastYears: 10}
}

// ParseClockTime parses an HH:MM literal for the named field.
func (v *Validator) ParseClockTime(field, value string) (domain.TimeOfDay, error) {
	t, err := domain.ParseTimeOfDay(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.NewInvalidInputError(field, value, "expected HH:MM between 00:00 and 23:59")
	}
	return t, nil
}

// ParseClockTimeOrNow parses value, or falls back to the wall-clock minute of now when value is empty.
func (v *Validator) ParseClockTimeOrNow(field, value string, now time.Time) (domain.TimeOfDay, error) {
	if strings.TrimSpace(value) == "" {
		return domain.TimeOfDayFromTime(now), nil
	}
	return v.ParseClockTime(field, value)
}

// ParseDate parses a YYYY-MM-DD literal.
func (v *Validator) ParseDate(value string) (domain.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return "", errors.NewInvalidInputError("date", value, "expected a calendar day as YYYY-MM-DD")
	}
	return d, nil
}

// ParseMonthOrCurrent parses a YYYY-MM literal, defaulting to the month of now.
func (v *Validator) ParseMonthOrCurrent(value string, now time.Time) (domain.Month, error) {
	if strings.TrimSpace(value) == "" {
		return domain.MonthOf(now), nil
	}
	m, err := domain.ParseMonth(strings.TrimSpace(value))
	if err != nil {
		return "", errors.NewInvalidInputError("month", value, "expected a month as YYYY-MM")
	}
	return m, nil
}

// ValidateClockOrder requires clock-out strictly after clock-in.
func (v *Validator) ValidateClockOrder(clockIn, clockOut domain.TimeOfDay) error {
	if clockOut <= clockIn {
		return errors.NewClockOrderError(clockIn.String(), clockOut.String())
	}
	return nil
}

// IsReasonableDate reports whether a day can carry attendance: not in the
// future and not older than the retention window.
func (v *Validator) IsReasonableDate(d domain.Date, now time.Time) bool {
	today := domain.DateOf(now)
	oldest := domain.DateOf(now.AddDate(-v.maxPastYears, 0, 0))
	return d <= today && d >= oldest
}
