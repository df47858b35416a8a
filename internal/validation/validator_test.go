package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/internal/domain"
	"worktime/internal/errors"
)

var now = time.Date(2026, 10, 17, 17, 42, 30, 0, time.Local)

func TestValidator_ParseClockTime(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		input       string
		expected    domain.TimeOfDay
		expectError bool
	}{
		{"Valid time", "08:05", domain.MustParseTimeOfDay("08:05"), false},
		{"Surrounding spaces", " 19:37 ", domain.MustParseTimeOfDay("19:37"), false},
		{"Out of range", "25:00", 0, true},
		{"Garbage", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validator.ParseClockTime("time", tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
				assert.Contains(t, err.Error(), "invalid input for time")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidator_ParseClockTimeOrNow(t *testing.T) {
	validator := NewValidator()

	result, err := validator.ParseClockTimeOrNow("time", "", now)
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseTimeOfDay("17:42"), result)

	result, err = validator.ParseClockTimeOrNow("time", "09:00", now)
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseTimeOfDay("09:00"), result)

	_, err = validator.ParseClockTimeOrNow("time", "9", now)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestValidator_ParseDate(t *testing.T) {
	validator := NewValidator()

	d, err := validator.ParseDate("2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2026-10-01"), d)

	_, err = validator.ParseDate("2026-10-32")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestValidator_ParseMonthOrCurrent(t *testing.T) {
	validator := NewValidator()

	m, err := validator.ParseMonthOrCurrent("", now)
	require.NoError(t, err)
	assert.Equal(t, domain.Month("2026-10"), m)

	m, err = validator.ParseMonthOrCurrent("2026-02", now)
	require.NoError(t, err)
	assert.Equal(t, domain.Month("2026-02"), m)

	_, err = validator.ParseMonthOrCurrent("Feb 2026", now)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Contains(t, err.Error(), "month")
}

func TestValidator_ValidateClockOrder(t *testing.T) {
	validator := NewValidator()
	in := domain.MustParseTimeOfDay("08:30")

	assert.NoError(t, validator.ValidateClockOrder(in, domain.MustParseTimeOfDay("08:31")))

	for _, out := range []string{"08:30", "08:29"} {
		err := validator.ValidateClockOrder(in, domain.MustParseTimeOfDay(out))
		require.Error(t, err, out)
		assert.True(t, errors.HasCode(err, errors.CodeClockOutOrder))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	}
}

func TestValidator_IsReasonableDate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		date     domain.Date
		expected bool
	}{
		{"2026-10-17", true},
		{"2026-10-01", true},
		{"2016-10-17", true},
		{"2016-10-16", false},
		{"2026-10-18", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.date), func(t *testing.T) {
			assert.Equal(t, tt.expected, validator.IsReasonableDate(tt.date, now))
		})
	}
}
