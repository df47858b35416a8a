package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "wt.db", cfg.Storage.DBFilename)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "ledger"), cfg.Storage.LedgerDir)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, os.FileMode(0755), cfg.GetDirPermissions())
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Attendance.RejectDoubleClockIn)
	require.NoError(t, cfg.Validate())

	rules, err := cfg.GetRules()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRules(), rules)
}

func TestConfig_GetRulesFilePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.DataDir = "/data"

	path, explicit := cfg.GetRulesFilePath()
	assert.Equal(t, filepath.Join("/data", "rules.yaml"), path)
	assert.False(t, explicit)

	cfg.Rules.File = "/etc/wt/rules.yaml"
	path, explicit = cfg.GetRulesFilePath()
	assert.Equal(t, "/etc/wt/rules.yaml", path)
	assert.True(t, explicit)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty ledger dir", func(c *Config) { c.Storage.LedgerDir = "" }, "storage.ledger_dir"},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = "" }, "storage.data_dir"},
		{"empty db filename", func(c *Config) { c.Storage.DBFilename = "" }, "storage.db_filename"},
		{"zero query timeout", func(c *Config) { c.Storage.QueryTimeout = 0 }, "storage.query_timeout"},
		{"bad permissions", func(c *Config) { c.Storage.DirPermissions = 01000 }, "storage.dir_permissions"},
		{"bad work start", func(c *Config) { c.Rules.WorkStart = "8h30" }, "rules.work_start"},
		{"lunch end before start", func(c *Config) { c.Rules.LunchEnd = "11:00" }, "rules"},
		{"zero step", func(c *Config) { c.Rules.OvertimeStep = 0 }, "rules"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoader_Precedence(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, "rules.yaml"), `
work_start: "08:00"
flex_deadline: "09:00"
required_work: 480m
hint_window: 10m
`)

	t.Setenv("WT_DATA_DIR", dataDir)
	t.Setenv("WT_REQUIRED_WORK", "420m")
	t.Setenv("WT_APP_TIMEOUT", "45s")

	timeout := 5 * time.Second
	cfg, err := NewLoaderWithEnvFile("").LoadWithOverrides(&ConfigOverrides{Timeout: &timeout})
	require.NoError(t, err)

	rules, err := cfg.GetRules()
	require.NoError(t, err)

	// file over defaults
	assert.Equal(t, domain.MustParseTimeOfDay("08:00"), rules.WorkStart)
	assert.Equal(t, 10*time.Minute, rules.HintWindow)
	// defaults kept for keys the file omits
	assert.Equal(t, domain.MustParseTimeOfDay("11:30"), rules.LunchStart)
	// environment over file
	assert.Equal(t, 420*time.Minute, rules.RequiredWork)
	// flags over environment
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
}

func TestLoader_RulesFileFlagOverridesEnvironment(t *testing.T) {
	dir := t.TempDir()
	envRules := filepath.Join(dir, "env.yaml")
	flagRules := filepath.Join(dir, "flag.yaml")
	writeFile(t, envRules, `work_start: "07:00"`)
	writeFile(t, flagRules, `work_start: "09:00"`+"\n"+`flex_deadline: "09:30"`)

	t.Setenv("WT_DATA_DIR", dir)
	t.Setenv("WT_RULES_FILE", envRules)

	cfg, err := NewLoaderWithEnvFile("").LoadWithOverrides(&ConfigOverrides{RulesFile: &flagRules})
	require.NoError(t, err)

	rules, err := cfg.GetRules()
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseTimeOfDay("09:00"), rules.WorkStart)
	assert.Equal(t, flagRules, cfg.Rules.File)
}

func TestLoader_MissingExplicitRulesFile(t *testing.T) {
	t.Setenv("WT_DATA_DIR", t.TempDir())
	t.Setenv("WT_RULES_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := NewLoaderWithEnvFile("").Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "rules.file", cfgErr.Field)
}

func TestLoader_InvalidRulesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rules.yaml"), "required_work: [not a duration")
	t.Setenv("WT_DATA_DIR", dir)

	_, err := NewLoaderWithEnvFile("").Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "rules.file", cfgErr.Field)
}

func TestLoader_InvalidRuleEnvironment(t *testing.T) {
	t.Setenv("WT_DATA_DIR", t.TempDir())
	t.Setenv("WT_OVERTIME_STEP", "half an hour")

	_, err := NewLoaderWithEnvFile("").Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "WT_OVERTIME_STEP", cfgErr.Field)
}

func TestLoader_LenientEnvironmentFallsBack(t *testing.T) {
	t.Setenv("WT_DATA_DIR", t.TempDir())
	t.Setenv("WT_APP_TIMEOUT", "soon")
	t.Setenv("WT_REJECT_DOUBLE_CLOCK_IN", "true")
	t.Setenv("WT_DIR_PERMISSIONS", "700")

	cfg, err := NewLoaderWithEnvFile("").Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Attendance.RejectDoubleClockIn)
	assert.Equal(t, os.FileMode(0700), cfg.GetDirPermissions())
}

func TestLoader_EnvFile(t *testing.T) {
	const key = "WT_HINT_WINDOW"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	ledgerDir := filepath.Join(dir, "from-process")
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "WT_HINT_WINDOW=5m\nWT_LEDGER_DIR="+filepath.Join(dir, "from-file")+"\n")

	t.Setenv("WT_DATA_DIR", dir)
	t.Setenv("WT_LEDGER_DIR", ledgerDir)

	cfg, err := NewLoaderWithEnvFile(envFile).Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Rules.HintWindow)
	assert.Equal(t, ledgerDir, cfg.Storage.LedgerDir, "process environment wins over the env file")
}

func TestLoader_MissingEnvFileIgnored(t *testing.T) {
	t.Setenv("WT_DATA_DIR", t.TempDir())

	_, err := NewLoaderWithEnvFile(filepath.Join(t.TempDir(), ".env")).Load()
	assert.NoError(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDurationWithFallback("3s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("1", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9", 8, 0755))
}
