package cli

import (
	"context"
	"fmt"
	"io"

	"worktime/internal/api"
)

const fixUsage = "wt fix YYYY-MM-DD HH:MM HH:MM"

// FixCommand handles the fix command, which records a whole day after the fact
type FixCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewFixCommand creates a new fix command handler
func NewFixCommand(app *App) *FixCommand {
	return &FixCommand{
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		out:          app.out,
	}
}

// Execute runs the fix command
func (c *FixCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError(args, fixUsage)
	}

	outcome, err := c.businessAPI.FixDay(ctx, args[0], args[1], args[2])
	if err != nil {
		return c.errorHandler.Handle("fix day", err)
	}

	record := outcome.Record
	fmt.Fprintf(c.out, "Recorded %s: %s - %s\n", record.Date, record.ClockIn, record.ClockOut)
	printDay(c.out, outcome)
	return nil
}
