package domain

import (
	"fmt"
	"time"
)

// Rules holds the workplace constants the worktime calculation is based on.
type Rules struct {
	WorkStart    TimeOfDay
	FlexDeadline TimeOfDay
	LunchStart   TimeOfDay
	LunchEnd     TimeOfDay

	RequiredWork time.Duration
	OvertimeGap  time.Duration
	OvertimeMin  time.Duration
	OvertimeStep time.Duration
	HintWindow   time.Duration
}

// DefaultRules returns the standard 08:30 start, 7.5h day with a 90 minute lunch.
func DefaultRules() Rules {
	return Rules{
		WorkStart:    MustParseTimeOfDay("08:30"),
		FlexDeadline: MustParseTimeOfDay("09:10"),
		LunchStart:   MustParseTimeOfDay("11:30"),
		LunchEnd:     MustParseTimeOfDay("13:00"),
		RequiredWork: 450 * time.Minute,
		OvertimeGap:  30 * time.Minute,
		OvertimeMin:  30 * time.Minute,
		OvertimeStep: 30 * time.Minute,
		HintWindow:   15 * time.Minute,
	}
}

// LunchDuration is derived from the lunch window.
func (r Rules) LunchDuration() time.Duration {
	return time.Duration(r.LunchEnd-r.LunchStart) * time.Minute
}

// Validate checks that the rules describe a consistent working day.
func (r Rules) Validate() error {
	for name, t := range map[string]TimeOfDay{
		"work start":    r.WorkStart,
		"flex deadline": r.FlexDeadline,
		"lunch start":   r.LunchStart,
		"lunch end":     r.LunchEnd,
	} {
		if !t.IsValid() {
			return fmt.Errorf("%s %d is outside a single day", name, t)
		}
	}
	if r.FlexDeadline < r.WorkStart {
		return fmt.Errorf("flex deadline %s is before work start %s", r.FlexDeadline, r.WorkStart)
	}
	if r.LunchEnd <= r.LunchStart {
		return fmt.Errorf("lunch end %s must be after lunch start %s", r.LunchEnd, r.LunchStart)
	}
	if r.RequiredWork <= 0 {
		return fmt.Errorf("required work must be positive")
	}
	if r.OvertimeStep < time.Minute {
		return fmt.Errorf("overtime step must be at least one minute")
	}
	if r.OvertimeGap < 0 || r.OvertimeMin < 0 || r.HintWindow < 0 {
		return fmt.Errorf("overtime gap, overtime minimum and hint window must not be negative")
	}
	return nil
}
