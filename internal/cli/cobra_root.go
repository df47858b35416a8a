package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/logging"
)

// Factory builds the business API for a loaded configuration. The returned
// func releases whatever the factory opened.
type Factory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	factory   Factory
	out       io.Writer
	overrides *config.ConfigOverrides
	config    *config.Config
	app       *App
	closer    func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory Factory, out io.Writer) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		out:     out,
	}

	root.cmd = &cobra.Command{
		Use:   "wt",
		Short: "A command-line attendance and overtime ledger",
		Long: `Worktime (wt) records daily clock-in and clock-out times, computes worked
and overtime hours under fixed workplace rules and keeps one markdown ledger
per month.

EXAMPLES:
  wt in                                    # Clock in now
  wt in 08:05                              # Clock in at 08:05 today
  wt status                                # Show the pending clock-in and a projection
  wt out 19:37                             # Clock out and write today's ledger row
  wt fix 2026-10-01 08:05 19:37            # Record a whole day after the fact
  wt summary 2026-10                       # Month table with totals
  wt export 2026-10 > 2026-10.csv          # Export a month to CSV

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables (.env included) > rules file > defaults

  Storage Configuration:
    WT_LEDGER_DIR                          Ledger directory (default: ~/.wt/ledger)
    WT_DATA_DIR                            State directory (default: ~/.wt)
    WT_DB_FILENAME                         State database filename (default: wt.db)
    WT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    WT_DIR_PERMISSIONS                     Directory permissions (default: 0755)

  Rules Configuration:
    WT_RULES_FILE                          YAML rules file (default: <data dir>/rules.yaml)
    WT_WORK_START                          Work start (default: 08:30)
    WT_FLEX_DEADLINE                       Flex deadline (default: 09:10)
    WT_LUNCH_START, WT_LUNCH_END           Lunch window (default: 11:30-13:00)
    WT_REQUIRED_WORK                       Required work per day (default: 450m)
    WT_OVERTIME_GAP                        Gap before overtime starts (default: 30m)
    WT_OVERTIME_MIN, WT_OVERTIME_STEP      Overtime minimum and step (default: 30m)
    WT_HINT_WINDOW                         Overtime hint window (default: 15m)

  Attendance Configuration:
    WT_REJECT_DOUBLE_CLOCK_IN              Reject a second clock-in (default: false)

  Application Configuration:
    WT_APP_TIMEOUT                         Application timeout (default: 30s)
    WT_APP_VERBOSE                         Enable verbose output (default: false)
    WT_DEBUG                               Enable debug logging

GETTING HELP:
  wt [command] --help                      # Get help for any specific command
  wt completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Collect flag overrides before any command runs
			root.overrides = root.getOverridesFromFlags()
			return nil
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases resources opened for it
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args for the next execution
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration loaded for the last command, if any
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("ledger-dir", "", "Ledger directory (overrides WT_LEDGER_DIR)")
	flags.String("data-dir", "", "State directory (overrides WT_DATA_DIR)")

	// Rules configuration
	flags.String("rules-file", "", "YAML rules file (overrides WT_RULES_FILE)")

	// Attendance configuration
	flags.Bool("reject-double-clock-in", false, "Reject a second clock-in (overrides WT_REJECT_DOUBLE_CLOCK_IN)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides WT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides WT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	inCmd := &cobra.Command{
		Use:   "in [HH:MM]",
		Short: "Clock in",
		Long: `Record a pending clock-in for today. Without a time the current time is used.

A second clock-in replaces the pending one and the replaced time is reported,
unless double clock-ins are configured to be rejected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run("in"),
	}

	outCmd := &cobra.Command{
		Use:   "out [HH:MM]",
		Short: "Clock out",
		Long: `Complete today's pending clock-in, compute worked and overtime hours and
write the day into the month's ledger. Without a time the current time is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run("out"),
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pending clock-in",
		Long:  "Show the pending clock-in together with the hours a clock-out right now would record.",
		Args:  cobra.NoArgs,
		RunE:  r.run("status"),
	}

	fixCmd := &cobra.Command{
		Use:   "fix YYYY-MM-DD HH:MM HH:MM",
		Short: "Record a whole day",
		Long: `Record a day from its clock-in and clock-out times, replacing any existing
entry for that date. The pending clock-in is left untouched.`,
		Args: cobra.ExactArgs(3),
		RunE: r.run("fix"),
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [YYYY-MM]",
		Short: "Show a month of the ledger",
		Long:  "Show every recorded day of a month with its totals. Defaults to the current month.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run("summary"),
	}

	exportCmd := &cobra.Command{
		Use:   "export [YYYY-MM]",
		Short: "Export a month as CSV",
		Long: `Write every recorded day of a month as CSV to standard output.
Defaults to the current month.

Example:
  wt export 2026-10 > 2026-10.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run("export"),
	}

	r.cmd.AddCommand(
		inCmd,
		outCmd,
		statusCmd,
		fixCmd,
		summaryCmd,
		exportCmd,
	)
}

// run returns a RunE that dispatches to the registered command handler
func (r *RootCommand) run(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := r.setup(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return r.app.registry.Execute(ctx, name, args)
	}
}

// setup loads the configuration and builds the application once
func (r *RootCommand) setup() error {
	if r.app != nil {
		return nil
	}

	cfg, err := r.loader.LoadWithOverrides(r.overrides)
	if err != nil {
		return err
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)

	businessAPI, closer, err := r.factory(cfg)
	if err != nil {
		return err
	}
	r.closer = closer
	r.app = NewApp(businessAPI, r.out)

	logging.Debugf("ledger dir %s, state db %s", cfg.Storage.LedgerDir, cfg.GetDatabasePath())
	return nil
}

func (r *RootCommand) close() {
	if r.closer == nil {
		return
	}
	if err := r.closer(); err != nil {
		logging.Logger().Warn("failed to close resources", "error", err)
	}
	r.closer = nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("ledger-dir") {
		v, _ := flags.GetString("ledger-dir")
		overrides.LedgerDir = &v
	}
	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		overrides.DataDir = &v
	}
	if flags.Changed("rules-file") {
		v, _ := flags.GetString("rules-file")
		overrides.RulesFile = &v
	}
	if flags.Changed("reject-double-clock-in") {
		v, _ := flags.GetBool("reject-double-clock-in")
		overrides.RejectDoubleClockIn = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
