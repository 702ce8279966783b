package backend

import (
	"context"
	"fmt"
	"log/slog"

	"bilancio/internal/store"
	"bilancio/internal/store/memory"
	"bilancio/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*Result, error) {
	st := memory.New()
	if err := f.seed(ctx, st, config); err != nil {
		return nil, err
	}
	f.logger.Info("Initialized memory backend", "seeded", config.Seed)
	return &Result{Store: st, Cleanup: st.Close}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*Result, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}
	if err := f.seed(ctx, repo, config); err != nil {
		repo.Close()
		return nil, err
	}
	f.logger.Info("Initialized sqlite backend", "dsn", config.SQLiteDSN, "seeded", config.Seed)
	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) seed(ctx context.Context, st store.Store, config Config) error {
	if !config.Seed {
		return nil
	}
	if err := store.Seed(ctx, st); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	return nil
}
