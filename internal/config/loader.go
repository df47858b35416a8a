package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return NewLoaderWithEnvFile(DefaultEnvFile)
}

// NewLoaderWithEnvFile creates a loader reading dotenv variables from path.
// An empty path disables dotenv loading.
func NewLoaderWithEnvFile(path string) *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Overlay the YAML rules file
// 3. Override with environment variables, including a .env file
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config := l.config

	// Variables already present in the process environment win over the file.
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	// The storage location decides where the rules file lives.
	config.loadStorageEnvironment()
	if overrides != nil {
		l.applyStorageOverrides(config, overrides)
	}

	if err := config.LoadRulesFile(); err != nil {
		return nil, err
	}

	if err := config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyStorageOverrides(config, overrides)
		l.applyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if _, err := os.Stat(l.envFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		return &ConfigError{Field: "env_file", Message: err.Error()}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	LedgerDir *string
	DataDir   *string
	RulesFile *string

	// Attendance overrides
	RejectDoubleClockIn *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyStorageOverrides applies the location flags
func (l *Loader) applyStorageOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.LedgerDir != nil {
		config.Storage.LedgerDir = *overrides.LedgerDir
	}
	if overrides.DataDir != nil {
		config.Storage.DataDir = *overrides.DataDir
	}
	if overrides.RulesFile != nil {
		config.Rules.File = *overrides.RulesFile
	}
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.RejectDoubleClockIn != nil {
		config.Attendance.RejectDoubleClockIn = *overrides.RejectDoubleClockIn
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
