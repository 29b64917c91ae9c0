package backend

import (
	"context"
	"fmt"
	"log/slog"

	"faktur/internal/store/kv"
	"faktur/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case KVBackend:
		return f.createKVBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createKVBackend(config Config) (*BackendResult, error) {
	var st *kv.Store
	if config.KVDataDir != "" {
		st = kv.NewFromDir(config.KVDataDir)
		f.logger.Info("Initialized KV backend", "data_directory", config.KVDataDir)
	} else {
		st = kv.New()
		f.logger.Info("Initialized in-memory KV backend")
	}

	return &BackendResult{
		Store:   st,
		Cleanup: nil, // No cleanup needed for KV backend
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	st, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   st,
		Cleanup: st.Close,
	}, nil
}
