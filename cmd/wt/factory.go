package main

import (
	"os"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/repository/sqlite"
	"worktime/internal/services"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// AppFactory builds the business API for a loaded configuration
type AppFactory struct {
	env Environment
}

// NewAppFactory creates a new factory for the given environment
func NewAppFactory(env Environment) *AppFactory {
	return &AppFactory{env: env}
}

// Build opens the pending clock-in store and wires it with the ledger
func (f *AppFactory) Build(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	rules, err := cfg.GetRules()
	if err != nil {
		return nil, nil, err
	}

	repo, err := f.createRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	businessAPI := api.New(repo, config.CreateLedgerStore(cfg), rules,
		services.WithRejectDoubleClockIn(cfg.Attendance.RejectDoubleClockIn))
	return businessAPI, repo.Close, nil
}

// createRepository creates the pending clock-in store for the current environment
func (f *AppFactory) createRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch f.env {
	case Development:
		// Keep state next to the working copy; the ledger location is unchanged.
		local := *cfg
		local.Storage.DataDir = "."
		return config.CreateRepository(&local)
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("WT_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		return Production
	}
}
