package cli

import (
	"context"
	"io"

	"worktime/internal/api"
	"worktime/internal/logging"
)

const exportUsage = "wt export [YYYY-MM]"

// ExportCommand handles the export command, which writes a month as CSV
type ExportCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		out:          app.out,
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	month, err := optionalArg(args, exportUsage)
	if err != nil {
		return err
	}

	n, err := c.businessAPI.ExportMonth(ctx, month, c.out)
	if err != nil {
		return c.errorHandler.Handle("export month", err)
	}

	logging.Debugf("exported %d day(s)", n)
	return nil
}
