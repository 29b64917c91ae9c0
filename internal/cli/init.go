// Package cli provides common initialization utilities shared by the
// faktur command line programs.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"faktur/internal/config"
	"faktur/internal/history"
	applog "faktur/internal/log"
	"faktur/internal/numbering"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging from config and sets it as
// the default logger.
func SetupLogger(cfg *config.Config, component string) *applog.Logger {
	level := applog.ParseLevel(cfg.LogLevel)
	logger := applog.New(applog.Config{
		Level:     level,
		Component: component,
		Handler:   applog.NewHandler(cfg.LogFormat, level),
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitHistory opens the local record store backed by the configured file.
func InitHistory(cfg *config.Config) *history.Store {
	repo := history.NewFileRepository(cfg.HistoryFile)
	return history.NewStore(repo)
}

// InitNumbering opens the invoice number generator backed by the
// configured counter file.
func InitNumbering(cfg *config.Config) *numbering.Generator {
	return numbering.NewGenerator(numbering.NewFileCounterStore(cfg.CounterFile))
}

// InitDeviceID reads or creates the persistent device identity.
// Returns the id or exits the process on failure.
func InitDeviceID(logger *applog.Logger, cfg *config.Config) string {
	deviceID, err := history.DeviceID(cfg.DeviceIDFile)
	if err != nil {
		logger.Error("Failed to load device identity", "error", err, "path", cfg.DeviceIDFile)
		os.Exit(1)
	}
	return deviceID
}
