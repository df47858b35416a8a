package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/internal/api"
	"worktime/internal/config"
)

type rootTestEnv struct {
	root    *RootCommand
	out     *bytes.Buffer
	mockAPI *mockBusinessAPI
	built   int
	closed  int
	cfg     *config.Config
}

func setupRootCommand(t *testing.T) *rootTestEnv {
	t.Helper()
	dataDir := t.TempDir()
	t.Setenv("WT_DATA_DIR", dataDir)
	t.Setenv("WT_LEDGER_DIR", filepath.Join(dataDir, "ledger"))
	t.Setenv("WT_RULES_FILE", "")
	t.Setenv("WT_APP_TIMEOUT", "")

	env := &rootTestEnv{
		out:     &bytes.Buffer{},
		mockAPI: newMockBusinessAPI(time.Date(2026, 10, 17, 19, 37, 0, 0, time.Local)),
	}
	factory := func(cfg *config.Config) (api.BusinessAPI, func() error, error) {
		env.built++
		env.cfg = cfg
		return env.mockAPI, func() error {
			env.closed++
			return nil
		}, nil
	}
	env.root = NewRootCommand(config.NewLoaderWithEnvFile(""), factory, env.out)
	return env
}

func TestRootCommand_RunsSubcommands(t *testing.T) {
	env := setupRootCommand(t)

	env.root.SetArgs([]string{"fix", "2026-10-01", "08:05", "19:37"})
	require.NoError(t, env.root.Execute())

	assert.Contains(t, env.out.String(), "Worked 7.5h, overtime 1.5h")
	assert.Equal(t, 1, env.built)
	assert.Equal(t, 1, env.closed)
}

func TestRootCommand_FlagsOverrideEnvironment(t *testing.T) {
	env := setupRootCommand(t)
	ledgerDir := t.TempDir()

	env.root.SetArgs([]string{
		"--ledger-dir", ledgerDir,
		"--reject-double-clock-in",
		"--app-timeout", "5s",
		"status",
	})
	require.NoError(t, env.root.Execute())

	require.NotNil(t, env.cfg)
	assert.Equal(t, ledgerDir, env.cfg.Storage.LedgerDir)
	assert.True(t, env.cfg.Attendance.RejectDoubleClockIn)
	assert.Equal(t, 5*time.Second, env.cfg.Application.Timeout)
	assert.Equal(t, "Not clocked in\n", env.out.String())
}

func TestRootCommand_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"fix needs three arguments", []string{"fix", "2026-10-01"}},
		{"status takes no arguments", []string{"status", "now"}},
		{"in takes one time", []string{"in", "08:00", "09:00"}},
		{"unknown command", []string{"start"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRootCommand(t)
			env.root.SetArgs(tt.args)

			assert.Error(t, env.root.Execute())
			assert.Zero(t, env.built)
		})
	}
}

func TestRootCommand_ConfigErrorStopsBeforeBuilding(t *testing.T) {
	env := setupRootCommand(t)
	t.Setenv("WT_REQUIRED_WORK", "seven hours")

	env.root.SetArgs([]string{"status"})
	err := env.root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "WT_REQUIRED_WORK")
	assert.Zero(t, env.built)
}

func TestRootCommand_FactoryError(t *testing.T) {
	t.Setenv("WT_DATA_DIR", t.TempDir())
	out := &bytes.Buffer{}
	factory := func(cfg *config.Config) (api.BusinessAPI, func() error, error) {
		return nil, nil, fmt.Errorf("failed to initialize database: boom")
	}

	root := NewRootCommand(config.NewLoaderWithEnvFile(""), factory, out)
	root.SetArgs([]string{"status"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
