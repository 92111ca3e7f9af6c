package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/pkg/cache"
	"github.com/noah-isme/sma-adp-console/pkg/config"
	"github.com/noah-isme/sma-adp-console/pkg/database"
	"github.com/noah-isme/sma-adp-console/pkg/storage"
)

// StateRepository persists small JSON blobs (auth-storage, help-storage).
// Get returns errors.ErrStateMiss for unknown keys.
type StateRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// OpenStateRepository builds the backend selected by configuration.
func OpenStateRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (StateRepository, error) {
	switch cfg.State.Backend {
	case "", config.StateBackendFile:
		store, err := storage.NewLocalStorage(cfg.State.Dir)
		if err != nil {
			return nil, err
		}
		return NewFileStateRepository(store), nil
	case config.StateBackendRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStateRepository(client, logger), nil
	case config.StateBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewSQLStateRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}
