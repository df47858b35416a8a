package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"worktime/internal/api"
	"worktime/internal/domain"
	"worktime/internal/services"
)

// StatusCommand handles the status command
type StatusCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		out:          app.out,
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError(args, "wt status")
	}

	status, err := c.businessAPI.GetStatus(ctx)
	if err != nil {
		return c.errorHandler.Handle("get status", err)
	}

	return c.showStatus(status)
}

// showStatus renders the pending clock-in and the projection for leaving now
func (c *StatusCommand) showStatus(status *services.StatusResult) error {
	if status.Pending == nil {
		fmt.Fprintln(c.out, "Not clocked in")
		return nil
	}

	pending := status.Pending
	if status.Stale {
		fmt.Fprintf(c.out, "Pending clock-in %s is from %s; use fix to record that day\n", pending.Time, pending.Date)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.AppendRow(table.Row{"Clocked in", fmt.Sprintf("%s on %s", pending.Time, pending.Date)})
	t.AppendRow(table.Row{"Now", domain.TimeOfDayFromTime(status.Now).String()})

	projection := status.Projection
	if projection != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Effective start", domain.FormatMinutes(projection.EffectiveStart)})
		t.AppendRow(table.Row{"Required end", domain.FormatMinutes(projection.RequiredEnd)})
		t.AppendRow(table.Row{"Overtime from", domain.FormatMinutes(projection.OvertimeThreshold)})
		t.AppendRow(table.Row{"Worked so far", fmt.Sprintf("%.1fh", domain.RoundHours(projection.WorkedHours))})
		t.AppendRow(table.Row{"Overtime so far", fmt.Sprintf("%.1fh", domain.RoundHours(projection.OvertimeHours))})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if projection == nil {
		return nil
	}
	for _, note := range projection.Notes {
		fmt.Fprintf(c.out, "  note: %s\n", note)
	}
	if projection.Hint != nil {
		fmt.Fprintf(c.out, "  hint: %s\n", projection.Hint)
	}
	return nil
}
