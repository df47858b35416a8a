package validation

import (
	"time"

	"worktime/internal/domain"
)

// FixDayInput is a validated correction for a past day.
type FixDayInput struct {
	Date     domain.Date
	ClockIn  domain.TimeOfDay
	ClockOut domain.TimeOfDay
}

// AttendanceValidator validates multi-field attendance commands
type AttendanceValidator struct {
	validator *Validator
}

// NewAttendanceValidator creates a new attendance validator
func NewAttendanceValidator() *AttendanceValidator {
	return &AttendanceValidator{validator: NewValidator()}
}

// ValidateFixDay checks every field of a fix-a-day request and reports all
// malformed fields at once. A well-formed pair in the wrong order yields the
// clock order error instead.
func (av *AttendanceValidator) ValidateFixDay(date, clockIn, clockOut string, now time.Time) (FixDayInput, error) {
	validationError := NewValidationError()
	var input FixDayInput

	if d, err := domain.ParseDate(date); err != nil {
		validationError.AddInvalidFormatError("date", date, "YYYY-MM-DD")
	} else if !av.validator.IsReasonableDate(d, now) {
		validationError.AddInvalidRangeError("date", date, "must not be in the future or more than 10 years ago")
	} else {
		input.Date = d
	}

	if t, err := domain.ParseTimeOfDay(clockIn); err != nil {
		validationError.AddInvalidFormatError("clock_in", clockIn, "HH:MM")
	} else {
		input.ClockIn = t
	}

	if t, err := domain.ParseTimeOfDay(clockOut); err != nil {
		validationError.AddInvalidFormatError("clock_out", clockOut, "HH:MM")
	} else {
		input.ClockOut = t
	}

	if validationError.HasErrors() {
		return FixDayInput{}, validationError.ToAppError()
	}

	if err := av.validator.ValidateClockOrder(input.ClockIn, input.ClockOut); err != nil {
		return FixDayInput{}, err
	}

	return input, nil
}
