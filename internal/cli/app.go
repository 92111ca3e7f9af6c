package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/internal/auth"
	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/repository"
	"github.com/noah-isme/sma-adp-console/internal/service"
	"github.com/noah-isme/sma-adp-console/internal/store"
	"github.com/noah-isme/sma-adp-console/pkg/config"
)

// App holds everything a command needs, built once per invocation.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	State    repository.StateRepository
	Auth     *auth.TokenAccessor
	Metrics  *service.MetricsService
	Client   *client.Client
	Registry *store.Registry
}

// NewApp wires the persisted state backend, the REST client and the stores.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	state, err := repository.OpenStateRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open state backend: %w", err)
	}

	tokens := auth.NewTokenAccessor(state, cfg.State.AuthStorageKey, logger.Named("auth"))
	metrics := service.NewMetricsService()

	apiClient := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
		Logger:  logger.Named("client"),
		Metrics: metrics,
	})

	registry := store.NewRegistry(store.Deps{
		Client:  apiClient,
		Logger:  logger.Named("store"),
		Metrics: metrics,
	}, state, cfg.State.HelpStorageKey)

	if err := registry.Help.Hydrate(ctx); err != nil {
		logger.Warn("failed to hydrate help storage", zap.Error(err))
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		State:    state,
		Auth:     tokens,
		Metrics:  metrics,
		Client:   apiClient,
		Registry: registry,
	}, nil
}

// Close aborts in-flight requests and releases the state backend.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	a.Registry.Close()
	return a.State.Close()
}
