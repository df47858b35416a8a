package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"worktime/internal/api"
	"worktime/internal/ledger"
	"worktime/internal/services"
)

const summaryUsage = "wt summary [YYYY-MM]"

// SummaryCommand handles the summary command
type SummaryCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		out:          app.out,
	}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	month, err := optionalArg(args, summaryUsage)
	if err != nil {
		return err
	}

	summary, err := c.businessAPI.GetMonthSummary(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("summarize month", err)
	}

	c.showSummary(summary)
	return nil
}

// showSummary prints one row per recorded day with the month totals as footer
func (c *SummaryCommand) showSummary(summary *services.MonthSummary) {
	if len(summary.Records) == 0 {
		fmt.Fprintf(c.out, "No days recorded for %s\n", summary.Month)
		c.showSkipped(summary)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetTitle("Attendance " + summary.Month.String())
	t.AppendHeader(table.Row{"Date", "In", "Out", "Worked (h)", "Overtime (h)", "Notes"})
	for _, r := range summary.Records {
		t.AppendRow(table.Row{
			r.Date,
			r.ClockIn,
			r.ClockOut,
			fmt.Sprintf("%.1f", r.WorkedHours),
			fmt.Sprintf("%.1f", r.OvertimeHours),
			strings.Join(r.Notes, "\n"),
		})
	}

	totals := summary.Totals
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d day(s)", totals.Days),
		"",
		fmt.Sprintf("late %d", totals.LateDays),
		totals.WorkedHours.StringFixed(1),
		totals.OvertimeHours.StringFixed(1),
		"",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(c.out, ledger.SummaryLine(totals))
	c.showSkipped(summary)
}

func (c *SummaryCommand) showSkipped(summary *services.MonthSummary) {
	if summary.Skipped > 0 {
		fmt.Fprintf(c.out, "Skipped %d unreadable line(s) in %s\n", summary.Skipped, summary.LedgerPath)
	}
}
