package cli

import (
	"context"

	"worktime/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("in", NewClockInCommand(app))
	registry.Register("out", NewClockOutCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("fix", NewFixCommand(app))
	registry.Register("summary", NewSummaryCommand(app))
	registry.Register("export", NewExportCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: wt in [HH:MM] or wt out [HH:MM] or wt status or wt fix YYYY-MM-DD HH:MM HH:MM or wt summary [YYYY-MM] or wt export [YYYY-MM]"
}
