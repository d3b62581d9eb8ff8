package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"protest-tracker/internal/database"
	"protest-tracker/internal/metrics"
	"protest-tracker/internal/router"
	"protest-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serverPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The schema is created on the first request that needs it, or at startup when
SCHEMA_FAIL_FAST=true, in which case a failure exits the process.

Examples:
  server serve
  server serve --port 9090 --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverPort, "port", "", "listen port (default: PORT or 8080)")
}

func runServer(ctx context.Context) error {
	log := logger.WithComponent("server")

	if serverPort != "" {
		cfg.Server.Port = serverPort
	}
	if cfg.Auth.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is not set, using an insecure development secret")
	}

	migrationURL, err := cfg.Database.MigrationURL()
	if err != nil {
		return err
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer pool.Close()
	metrics.RegisterPool(pool)

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("initialize redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		log.Info("Protest list cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))
	}

	schema := database.NewSchemaInitializer(database.MigrateUp(migrationURL), cfg.Schema.Timeout)
	if cfg.Schema.FailFast {
		if err := schema.EnsureReady(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
		metrics.SchemaReady.Set(1)
		log.Info("Schema ready")
	}

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: router.InitRouter(router.Dependencies{
			Pool:   pool,
			Redis:  rdb,
			Schema: schema,
			Config: cfg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
