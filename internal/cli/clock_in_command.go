package cli

import (
	"context"
	"fmt"
	"io"

	"worktime/internal/api"
)

const clockInUsage = "wt in [HH:MM]"

// ClockInCommand handles the in command
type ClockInCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewClockInCommand creates a new clock-in command handler
func NewClockInCommand(app *App) *ClockInCommand {
	return &ClockInCommand{
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		out:          app.out,
	}
}

// Execute runs the in command
func (c *ClockInCommand) Execute(ctx context.Context, args []string) error {
	timeStr, err := optionalArg(args, clockInUsage)
	if err != nil {
		return err
	}

	result, err := c.businessAPI.ClockIn(ctx, timeStr)
	if err != nil {
		return c.errorHandler.Handle("clock in", err)
	}

	if result.Replaced != nil {
		fmt.Fprintf(c.out, "Replaced pending clock-in %s from %s\n", result.Replaced.Time, result.Replaced.Date)
	}
	fmt.Fprintf(c.out, "Clocked in at %s on %s\n", result.Pending.Time, result.Pending.Date)
	return nil
}
