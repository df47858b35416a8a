package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Date is a calendar day in YYYY-MM-DD form. The layout sorts
// lexicographically in chronological order.
type Date string

// ParseDate parses a YYYY-MM-DD literal and rejects impossible days.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("date %q is not a valid YYYY-MM-DD day", s)
	}
	return Date(t.Format(DateLayout)), nil
}

// DateOf returns the local calendar day of t.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Month returns the month the day belongs to.
func (d Date) Month() Month {
	if len(d) < len(MonthLayout) {
		return ""
	}
	return Month(d[:len(MonthLayout)])
}

// Time returns midnight UTC of the day.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

func (d Date) String() string {
	return string(d)
}

// Month is a calendar month in YYYY-MM form.
type Month string

// ParseMonth parses a YYYY-MM literal.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return "", fmt.Errorf("month %q is not a valid YYYY-MM month", s)
	}
	return Month(t.Format(MonthLayout)), nil
}

// MonthOf returns the calendar month of t.
func MonthOf(t time.Time) Month {
	return Month(t.Format(MonthLayout))
}

// Contains reports whether d falls within the month.
func (m Month) Contains(d Date) bool {
	return d.Month() == m
}

func (m Month) String() string {
	return string(m)
}
