package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"task-tracker/internal/config"
	"task-tracker/internal/database"
	"task-tracker/internal/handlers"
	"task-tracker/internal/logging"
	"task-tracker/internal/monitoring"
	"task-tracker/internal/repositories"
	"task-tracker/internal/services"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if cfg.Server.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := database.NewDatabasePool(database.PoolConfigFrom(cfg))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, pool.DB)
	cancel()
	if err != nil {
		logger.Error("failed to migrate schema", "error", err)
		pool.Close()
		os.Exit(1)
	}

	server := newServer(cfg, pool, logger)

	go func() {
		logger.Info("listening", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				err := server.Shutdown(ctx)
				if closeErr := pool.Close(); closeErr != nil {
					logger.Error("failed to close database pool", "error", closeErr)
				}
				return err
			},
		},
	)

	exitCode := <-wait
	logger.Info("exited", "code", exitCode)
	os.Exit(exitCode)
}

func newServer(cfg *config.Config, pool *database.DatabasePool, logger *slog.Logger) *http.Server {
	repo := repositories.NewTaskRepository(pool.DB)
	taskService := services.NewTaskService(repo)
	taskHandler := handlers.NewTaskHandler(taskService, logger, cfg.Server.MaxBodyBytes)

	health := monitoring.NewHealthChecker(2 * time.Second)
	health.Register("database", pool.HealthContext)

	router := handlers.NewRouter(taskHandler, handlers.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAge:     cfg.CORS.MaxAge,
		Health:         health,
		MetricsExtra: map[string]func() map[string]interface{}{
			"database": pool.Stats,
		},
	})

	return &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}
