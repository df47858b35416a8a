package cli

import (
	"context"
	"fmt"
	"io"

	"worktime/internal/api"
)

const clockOutUsage = "wt out [HH:MM]"

// ClockOutCommand handles the out command
type ClockOutCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewClockOutCommand creates a new clock-out command handler
func NewClockOutCommand(app *App) *ClockOutCommand {
	return &ClockOutCommand{
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		out:          app.out,
	}
}

// Execute runs the out command
func (c *ClockOutCommand) Execute(ctx context.Context, args []string) error {
	timeStr, err := optionalArg(args, clockOutUsage)
	if err != nil {
		return err
	}

	outcome, err := c.businessAPI.ClockOut(ctx, timeStr)
	if err != nil {
		return c.errorHandler.Handle("clock out", err)
	}

	record := outcome.Record
	fmt.Fprintf(c.out, "Clocked out at %s on %s (in at %s)\n", record.ClockOut, record.Date, record.ClockIn)
	printDay(c.out, outcome)
	return nil
}
