// Package ledger keeps one markdown attendance document per month. Every
// upsert re-parses the document, replaces the day and rewrites the whole file.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"worktime/internal/domain"
)

// Ledger is the set of day records of one month, keyed by date.
type Ledger struct {
	Month   domain.Month
	Records map[domain.Date]domain.DayRecord
	// Skipped counts lines of the source document that could not be parsed.
	Skipped int
}

// New returns an empty ledger for month.
func New(month domain.Month) *Ledger {
	return &Ledger{
		Month:   month,
		Records: make(map[domain.Date]domain.DayRecord),
	}
}

// Upsert stores record, replacing any record of the same date.
func (l *Ledger) Upsert(record domain.DayRecord) {
	l.Records[record.Date] = record
}

// Sorted returns the records in ascending date order.
func (l *Ledger) Sorted() []domain.DayRecord {
	return sortRecords(l.Records)
}

// Totals aggregates the ledger.
func (l *Ledger) Totals() Totals {
	return ComputeTotals(l.Records)
}

// Totals are the month aggregates written to the summary line. Hours are
// summed as decimals so that a month of one-decimal rows adds up exactly.
type Totals struct {
	Days          int
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	LateDays      int
}

// ComputeTotals sums records.
func ComputeTotals(records map[domain.Date]domain.DayRecord) Totals {
	totals := Totals{
		WorkedHours:   decimal.Zero,
		OvertimeHours: decimal.Zero,
	}
	for _, r := range records {
		totals.Days++
		totals.WorkedHours = totals.WorkedHours.Add(decimal.NewFromFloat(r.WorkedHours))
		totals.OvertimeHours = totals.OvertimeHours.Add(decimal.NewFromFloat(r.OvertimeHours))
		if r.IsLate() {
			totals.LateDays++
		}
	}
	return totals
}

func sortRecords(records map[domain.Date]domain.DayRecord) []domain.DayRecord {
	sorted := make([]domain.DayRecord, 0, len(records))
	for _, r := range records {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
