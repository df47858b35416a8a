package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MinutesPerDay is the number of minutes in a wall-clock day.
const MinutesPerDay = 24 * 60

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// TimeOfDay is a local wall-clock time expressed as minutes past midnight.
// Valid values satisfy 0 <= t < MinutesPerDay.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" literal.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	matches := timeOfDayPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("time %q is not in HH:MM format", s)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("time %q is out of range 00:00-23:59", s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on malformed input.
// Intended for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromTime returns the wall-clock minute of t, dropping seconds.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Minutes returns the offset from midnight.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// IsValid reports whether t lies within a single day.
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) String() string {
	return FormatMinutes(int(t))
}

// FormatMinutes renders a minute offset as HH:MM. Offsets past midnight keep
// counting hours (24:30) so derived times such as a late required end remain
// readable.
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
