// Package worktime derives worked and overtime hours for a single day from a
// clock-in and clock-out pair under a fixed set of workplace rules.
package worktime

import (
	"fmt"
	"time"

	"worktime/internal/domain"
)

// Result is the outcome of a single day's calculation. Minute values are
// offsets from midnight and may exceed one day for late arrivals.
type Result struct {
	EffectiveStart    int
	RequiredEnd       int
	OvertimeThreshold int

	WorkedMinutes int
	WorkedHours   float64
	OvertimeHours float64
	IsLate        bool
	Notes         []string

	// Hint is set when the next overtime boundary is within the hint window.
	Hint *OvertimeHint
}

// OvertimeHint tells how far the clock-out is from the next overtime step.
type OvertimeHint struct {
	Boundary         int
	MinutesRemaining int
	OvertimeHours    float64
}

func (h OvertimeHint) String() string {
	return fmt.Sprintf("%d min until %.1fh overtime at %s", h.MinutesRemaining, h.OvertimeHours, domain.FormatMinutes(h.Boundary))
}

// Record converts the result into the ledger record for date.
func (r Result) Record(date domain.Date, clockIn, clockOut domain.TimeOfDay) domain.DayRecord {
	return domain.NewDayRecord(date, clockIn, clockOut, r.WorkedHours, r.OvertimeHours, r.Notes)
}

// Calculator applies Rules to clock-in/clock-out pairs. It performs no input
// validation: callers must pass a clock-out strictly after the clock-in.
type Calculator struct {
	rules domain.Rules
}

// NewCalculator creates a calculator for rules.
func NewCalculator(rules domain.Rules) *Calculator {
	return &Calculator{rules: rules}
}

// Rules returns the rules the calculator applies.
func (c *Calculator) Rules() domain.Rules {
	return c.rules
}

// Calculate computes the day's attendance.
func (c *Calculator) Calculate(clockIn, clockOut domain.TimeOfDay) Result {
	var (
		in           = clockIn.Minutes()
		out          = clockOut.Minutes()
		lunchStart   = c.rules.LunchStart.Minutes()
		lunchEnd     = c.rules.LunchEnd.Minutes()
		lunch        = lunchEnd - lunchStart
		required     = minutes(c.rules.RequiredWork)
		gap          = minutes(c.rules.OvertimeGap)
		flexDeadline = c.rules.FlexDeadline.Minutes()
	)

	result := Result{}

	// Early arrivals are clamped, not credited.
	result.EffectiveStart = max(in, c.rules.WorkStart.Minutes())
	start := result.EffectiveStart

	if start > flexDeadline {
		result.IsLate = true
		result.Notes = append(result.Notes, fmt.Sprintf("late arrival: %s after flex deadline %s",
			domain.FormatMinutes(start), c.rules.FlexDeadline))
	}

	switch {
	case start < lunchStart:
		result.RequiredEnd = start + required + lunch
	case start >= lunchEnd:
		result.RequiredEnd = start + required
	default:
		result.RequiredEnd = lunchEnd + required
	}

	lunchOverlap := max(0, min(out, lunchEnd)-max(start, lunchStart))
	actual := max(0, out-start-lunchOverlap)

	result.WorkedMinutes = min(actual, required)
	result.WorkedHours = float64(result.WorkedMinutes) / 60

	if actual < required {
		result.Notes = append(result.Notes, fmt.Sprintf("short by %d min of %s required",
			required-actual, formatHours(required)))
	}

	result.OvertimeThreshold = result.RequiredEnd + gap
	result.OvertimeHours = float64(c.overtimeMinutes(out-result.OvertimeThreshold)) / 60
	result.Hint = c.hint(out, result.OvertimeThreshold)

	return result
}

// overtimeMinutes floors raw overtime to the step once it reaches the minimum.
func (c *Calculator) overtimeMinutes(raw int) int {
	step := minutes(c.rules.OvertimeStep)
	if raw <= 0 || raw < minutes(c.rules.OvertimeMin) {
		return 0
	}
	return raw / step * step
}

// hint returns the next boundary at which overtime increases: the first
// payable boundary while below it, then successive step boundaries.
func (c *Calculator) hint(out, threshold int) *OvertimeHint {
	window := minutes(c.rules.HintWindow)
	if window <= 0 {
		return nil
	}

	minimum := minutes(c.rules.OvertimeMin)
	step := minutes(c.rules.OvertimeStep)

	raw := out - threshold
	next := max(minimum, step)
	if raw >= minimum {
		next = (raw/step + 1) * step
	}

	remaining := next - raw
	if remaining <= 0 || remaining > window {
		return nil
	}

	return &OvertimeHint{
		Boundary:         threshold + next,
		MinutesRemaining: remaining,
		OvertimeHours:    float64(c.overtimeMinutes(next)) / 60,
	}
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}

func formatHours(mins int) string {
	return fmt.Sprintf("%gh", float64(mins)/60)
}
