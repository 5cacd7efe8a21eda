package backend

import (
	"fmt"
	"log/slog"

	"fintrack/internal/store"
)

// Result contains the store instance and its cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateStore builds the configured store.
func (f *Factory) CreateStore(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLite:
		s, err := store.NewSQLite(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite store", "db_path", config.SQLiteDBPath)
		return &Result{Store: s, Cleanup: s.Close}, nil

	case File:
		dir := config.DataDirectory
		if dir == "" {
			dir = "data"
		}
		s, err := store.NewFile(dir)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		f.logger.Info("Initialized file store", "data_directory", dir)
		return &Result{Store: s, Cleanup: s.Close}, nil

	default:
		f.logger.Info("Initialized memory store")
		return &Result{Store: store.NewMemory(), Cleanup: nil}, nil
	}
}
