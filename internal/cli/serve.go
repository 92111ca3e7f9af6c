package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-adp-console/api/swagger"
	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/handler"
	"github.com/noah-isme/sma-adp-console/internal/middleware"
	"github.com/noah-isme/sma-adp-console/pkg/config"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/jobs"
	"github.com/noah-isme/sma-adp-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-adp-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-adp-console/pkg/middleware/requestid"
)

const readyProbeKey = "console-ready-probe"

func (con *console) serveCommand() *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve store state, metrics and docs over HTTP while polling health and stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("host") {
				con.app.Config.Host = host
			}
			if cmd.Flags().Changed("port") {
				con.app.Config.Port = port
			}
			return serve(cmd.Context(), con.app)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, app *App) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := app.Config
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	pollers := []*jobs.Poller{
		jobs.NewPoller(jobs.PollerConfig{
			Name:     "health",
			Interval: cfg.Polling.HealthInterval,
			Logger:   app.Logger.Named("poller"),
			Observer: app.Metrics,
		}, app.Registry.Admin.GetSystemHealth),
		jobs.NewPoller(jobs.PollerConfig{
			Name:     "stats",
			Interval: cfg.Polling.StatsInterval,
			Logger:   app.Logger.Named("poller"),
			Observer: app.Metrics,
		}, app.Registry.Admin.GetStats),
	}
	for _, p := range pollers {
		p.Start(ctx)
	}
	defer func() {
		for _, p := range pollers {
			p.Stop()
		}
	}()

	srv := &http.Server{
		Addr:              listenAddr(cfg),
		Handler:           NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "backend", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// listenAddr joins the configured host and port. An empty host falls back to
// loopback rather than every interface.
func listenAddr(cfg *config.Config) string {
	host := cfg.Host
	if host == "" {
		host = config.DefaultHost
	}
	return net.JoinHostPort(host, strconv.Itoa(cfg.Port))
}

// NewRouter builds the console HTTP surface over the app's stores.
func NewRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(app.Logger))
	r.Use(middleware.Metrics(app.Metrics))
	r.Use(corsmiddleware.New(app.Config.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(app.Metrics, map[string]handler.ReadinessCheck{
		"state":   stateCheck(app),
		"backend": backendCheck(app.Client),
	})
	stateHandler := handler.NewStateHandler(app.Registry)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if app.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := middleware.RequireRolesWhen(func(c *gin.Context) bool {
		return c.Param("store") == "admin" || strings.HasPrefix(c.Param("slice"), "admin.")
	}, "admin")

	api := r.Group("/api/v1", middleware.RequireSession(app.Auth))
	{
		api.GET("/session", handler.Session)
		api.GET("/metrics", metricsHandler.Snapshot)
		api.GET("/state", stateHandler.Slices)
		api.GET("/state/:store", adminOnly, stateHandler.Snapshot)
		api.POST("/refresh/:slice", adminOnly, stateHandler.Refresh)
		api.DELETE("/errors/:slice", adminOnly, stateHandler.ClearError)
	}

	return r
}

// stateCheck round-trips a read against the state backend; a miss still
// proves the backend answers.
func stateCheck(app *App) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		var probe struct{}
		err := app.State.Get(ctx, readyProbeKey, &probe)
		if err == nil || errors.Is(err, appErrors.ErrStateMiss) {
			return nil
		}
		return err
	}
}

// backendCheck treats any HTTP answer from the backend as reachable; only
// transport failures fail readiness.
func backendCheck(c *client.Client) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		err := c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/health"}, nil)
		if err == nil || appErrors.StatusOf(err) > 0 {
			return nil
		}
		return err
	}
}
