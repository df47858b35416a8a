package config

import (
	"fmt"
	"os"

	"worktime/internal/ledger"
	"worktime/internal/repository/sqlite"
)

// CreateRepository creates the pending clock-in store using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Storage.DataDir, config.GetDirPermissions()); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo, err := sqlite.New(config.GetDatabasePath(), sqlite.WithQueryTimeout(config.GetQueryTimeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}

// CreateLedgerStore creates the monthly ledger store. The directory is
// created on first write.
func CreateLedgerStore(config *Config) *ledger.Store {
	return ledger.NewStore(config.Storage.LedgerDir, ledger.WithDirPermissions(config.GetDirPermissions()))
}
