package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"worktime/internal/api"
	"worktime/internal/errors"
	"worktime/internal/ledger"
	"worktime/internal/services"
)

// App represents the main CLI application
type App struct {
	businessAPI  api.BusinessAPI
	registry     *CommandRegistry
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewApp creates a new CLI application writing command output to out
func NewApp(businessAPI api.BusinessAPI, out io.Writer) *App {
	app := &App{
		businessAPI:  businessAPI,
		errorHandler: NewErrorHandler(),
		out:          out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	return a.registry.Execute(ctx, args[0], args[1:])
}

// optionalArg returns the single optional positional argument.
func optionalArg(args []string, usage string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return strings.TrimSpace(args[0]), nil
	default:
		return "", usageError(args, usage)
	}
}

func usageError(args []string, usage string) error {
	return errors.NewInvalidInputError("arguments", strings.Join(args, " "), "usage: "+usage)
}

// printDay writes the outcome of a stored day followed by the month totals.
func printDay(w io.Writer, outcome *api.DayOutcome) {
	day := outcome.DayResult
	fmt.Fprintf(w, "Worked %.1fh, overtime %.1fh\n", day.Record.WorkedHours, day.Record.OvertimeHours)
	printNotes(w, day)
	fmt.Fprintf(w, "Ledger: %s\n", outcome.LedgerPath)
	fmt.Fprintf(w, "Month:  %s\n", ledger.SummaryLine(outcome.MonthTotals))
}

func printNotes(w io.Writer, day *services.DayResult) {
	for _, note := range day.Record.Notes {
		fmt.Fprintf(w, "  note: %s\n", note)
	}
	if day.Result.Hint != nil {
		fmt.Fprintf(w, "  hint: %s\n", day.Result.Hint)
	}
}
