package ledger

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"worktime/internal/domain"
)

const (
	titlePrefix    = "Attendance "
	sectionBreak   = "---"
	summaryPrefix  = "Total:"
	noteSeparator  = "; "
	overtimeMarker = "★"
)

var header = table.Row{"Date", "In", "Out", "Worked (h)", "Overtime (h)", "Notes"}

// Render writes the full document for month. Records are sorted by date and
// literal pipes in notes are escaped by the markdown writer.
func Render(month domain.Month, records map[domain.Date]domain.DayRecord) string {
	t := table.NewWriter()
	t.SetTitle(titlePrefix + month.String())
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignLeft},
	})

	for _, r := range sortRecords(records) {
		t.AppendRow(table.Row{
			r.Date.String(),
			r.ClockIn.String(),
			r.ClockOut.String(),
			fmt.Sprintf("%.1f", r.WorkedHours),
			formatOvertime(r.OvertimeHours),
			strings.Join(r.Notes, noteSeparator),
		})
	}

	var b strings.Builder
	b.WriteString(t.RenderMarkdown())
	b.WriteString("\n\n")
	b.WriteString(sectionBreak)
	b.WriteString("\n\n")
	b.WriteString(SummaryLine(ComputeTotals(records)))
	b.WriteString("\n")
	return b.String()
}

// SummaryLine formats the aggregate line closing the document.
func SummaryLine(t Totals) string {
	return fmt.Sprintf("%s %d day(s) · worked %sh · overtime %sh · late %d",
		summaryPrefix, t.Days, t.WorkedHours.StringFixed(1), t.OvertimeHours.StringFixed(1), t.LateDays)
}

func formatOvertime(h float64) string {
	s := fmt.Sprintf("%.1f", h)
	if h > 0 {
		s += " " + overtimeMarker
	}
	return s
}
