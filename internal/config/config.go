package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"worktime/internal/domain"
)

const defaultRulesFilename = "rules.yaml"

// Config holds all configuration options for the attendance tracker
type Config struct {
	Storage     StorageConfig
	Rules       RulesConfig
	Attendance  AttendanceConfig
	Application ApplicationConfig
}

// StorageConfig holds ledger and state database configuration
type StorageConfig struct {
	LedgerDir      string        `env:"WT_LEDGER_DIR"`
	DataDir        string        `env:"WT_DATA_DIR"`
	DBFilename     string        `env:"WT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"WT_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"WT_DIR_PERMISSIONS"`
}

// RulesConfig holds the workplace rules in their textual form. Times are
// HH:MM literals and spans are Go durations such as "450m".
type RulesConfig struct {
	File string `env:"WT_RULES_FILE" yaml:"-"`

	WorkStart    string        `env:"WT_WORK_START" yaml:"work_start"`
	FlexDeadline string        `env:"WT_FLEX_DEADLINE" yaml:"flex_deadline"`
	LunchStart   string        `env:"WT_LUNCH_START" yaml:"lunch_start"`
	LunchEnd     string        `env:"WT_LUNCH_END" yaml:"lunch_end"`
	RequiredWork time.Duration `env:"WT_REQUIRED_WORK" yaml:"required_work"`
	OvertimeGap  time.Duration `env:"WT_OVERTIME_GAP" yaml:"overtime_gap"`
	OvertimeMin  time.Duration `env:"WT_OVERTIME_MIN" yaml:"overtime_min"`
	OvertimeStep time.Duration `env:"WT_OVERTIME_STEP" yaml:"overtime_step"`
	HintWindow   time.Duration `env:"WT_HINT_WINDOW" yaml:"hint_window"`
}

// AttendanceConfig holds clock-in policy
type AttendanceConfig struct {
	RejectDoubleClockIn bool `env:"WT_REJECT_DOUBLE_CLOCK_IN"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"WT_APP_TIMEOUT"`
	Verbose bool          `env:"WT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".wt")
	rules := domain.DefaultRules()

	return &Config{
		Storage: StorageConfig{
			LedgerDir:      filepath.Join(dataDir, "ledger"),
			DataDir:        dataDir,
			DBFilename:     "wt.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Rules: RulesConfig{
			WorkStart:    rules.WorkStart.String(),
			FlexDeadline: rules.FlexDeadline.String(),
			LunchStart:   rules.LunchStart.String(),
			LunchEnd:     rules.LunchEnd.String(),
			RequiredWork: rules.RequiredWork,
			OvertimeGap:  rules.OvertimeGap,
			OvertimeMin:  rules.OvertimeMin,
			OvertimeStep: rules.OvertimeStep,
			HintWindow:   rules.HintWindow,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the state database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.DBFilename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetDirPermissions returns the mode used when creating directories
func (c *Config) GetDirPermissions() os.FileMode {
	return os.FileMode(c.Storage.DirPermissions)
}

// GetRulesFilePath returns the rules file location and whether it was set
// explicitly. The implicit location may be absent.
func (c *Config) GetRulesFilePath() (string, bool) {
	if c.Rules.File != "" {
		return c.Rules.File, true
	}
	return filepath.Join(c.Storage.DataDir, defaultRulesFilename), false
}

// LoadRulesFile overlays the YAML rules file onto the current rules. Keys
// missing from the file keep their current values.
func (c *Config) LoadRulesFile() error {
	path, explicit := c.GetRulesFilePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return &ConfigError{Field: "rules.file", Message: fmt.Sprintf("cannot read rules file %s: %v", path, err)}
	}

	if err := yaml.Unmarshal(data, &c.Rules); err != nil {
		return &ConfigError{Field: "rules.file", Message: fmt.Sprintf("invalid rules file %s: %v", path, err)}
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	c.loadStorageEnvironment()

	// Rules configuration
	for _, v := range []struct {
		name   string
		target *string
	}{
		{"WT_WORK_START", &c.Rules.WorkStart},
		{"WT_FLEX_DEADLINE", &c.Rules.FlexDeadline},
		{"WT_LUNCH_START", &c.Rules.LunchStart},
		{"WT_LUNCH_END", &c.Rules.LunchEnd},
	} {
		if value := os.Getenv(v.name); value != "" {
			*v.target = value
		}
	}
	for _, v := range []struct {
		name   string
		target *time.Duration
	}{
		{"WT_REQUIRED_WORK", &c.Rules.RequiredWork},
		{"WT_OVERTIME_GAP", &c.Rules.OvertimeGap},
		{"WT_OVERTIME_MIN", &c.Rules.OvertimeMin},
		{"WT_OVERTIME_STEP", &c.Rules.OvertimeStep},
		{"WT_HINT_WINDOW", &c.Rules.HintWindow},
	} {
		if value := os.Getenv(v.name); value != "" {
			d, err := time.ParseDuration(value)
			if err != nil {
				return &ConfigError{Field: v.name, Message: fmt.Sprintf("invalid duration %q", value)}
			}
			*v.target = d
		}
	}

	// Attendance configuration
	if reject := os.Getenv("WT_REJECT_DOUBLE_CLOCK_IN"); reject != "" {
		c.Attendance.RejectDoubleClockIn = ParseBoolWithFallback(reject, c.Attendance.RejectDoubleClockIn)
	}

	// Application configuration
	if timeout := os.Getenv("WT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("WT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// loadStorageEnvironment applies the storage variables. They decide where the
// rules file lives, so they are read before the file.
func (c *Config) loadStorageEnvironment() {
	if dir := os.Getenv("WT_LEDGER_DIR"); dir != "" {
		c.Storage.LedgerDir = dir
	}
	if dir := os.Getenv("WT_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
	if filename := os.Getenv("WT_DB_FILENAME"); filename != "" {
		c.Storage.DBFilename = filename
	}
	if timeout := os.Getenv("WT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if perms := os.Getenv("WT_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}
	if file := os.Getenv("WT_RULES_FILE"); file != "" {
		c.Rules.File = file
	}
}

// GetRules converts the textual rules into domain rules.
func (c *Config) GetRules() (domain.Rules, error) {
	var rules domain.Rules

	for _, v := range []struct {
		field  string
		value  string
		target *domain.TimeOfDay
	}{
		{"rules.work_start", c.Rules.WorkStart, &rules.WorkStart},
		{"rules.flex_deadline", c.Rules.FlexDeadline, &rules.FlexDeadline},
		{"rules.lunch_start", c.Rules.LunchStart, &rules.LunchStart},
		{"rules.lunch_end", c.Rules.LunchEnd, &rules.LunchEnd},
	} {
		t, err := domain.ParseTimeOfDay(v.value)
		if err != nil {
			return domain.Rules{}, &ConfigError{Field: v.field, Message: err.Error()}
		}
		*v.target = t
	}

	rules.RequiredWork = c.Rules.RequiredWork
	rules.OvertimeGap = c.Rules.OvertimeGap
	rules.OvertimeMin = c.Rules.OvertimeMin
	rules.OvertimeStep = c.Rules.OvertimeStep
	rules.HintWindow = c.Rules.HintWindow

	if err := rules.Validate(); err != nil {
		return domain.Rules{}, &ConfigError{Field: "rules", Message: err.Error()}
	}
	return rules, nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	if c.Storage.LedgerDir == "" {
		return &ConfigError{Field: "storage.ledger_dir", Message: "ledger directory cannot be empty"}
	}
	if c.Storage.DataDir == "" {
		return &ConfigError{Field: "storage.data_dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.DBFilename == "" {
		return &ConfigError{Field: "storage.db_filename", Message: "database filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.DirPermissions == 0 || c.Storage.DirPermissions > 0777 {
		return &ConfigError{Field: "storage.dir_permissions", Message: "directory permissions must be an octal mode between 1 and 777"}
	}

	// Validate rules
	if _, err := c.GetRules(); err != nil {
		return err
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
