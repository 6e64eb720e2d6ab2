// @title FPL Advisor API
// @version 1.0
// @description Lineup, transfer, captain and insight endpoints over public Fantasy Premier League data.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/app"
	"github.com/fpladvisor/advisor-api/internal/config"
	"github.com/fpladvisor/advisor-api/internal/handlers"
	"github.com/fpladvisor/advisor-api/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Application exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	lim, err := a.Limiter()
	if err != nil {
		return err
	}

	if cfg.WarmCacheInterval > 0 {
		warmer, err := scheduler.NewWarmer(a.FPL, logger)
		if err != nil {
			return err
		}
		if err := warmer.Start(cfg.WarmCacheInterval); err != nil {
			return err
		}
		defer func() {
			if err := warmer.Stop(); err != nil {
				logger.Warn("Cache warmer shutdown failed", zap.Error(err))
			}
		}()
	}

	router := handlers.NewRouter(a.Handler(), handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        lim,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("redis", cfg.RedisURL != ""),
		)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received", zap.Duration("timeout", shutdownTimeout))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("Failed to force close server", zap.Error(closeErr))
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server shutdown complete")
	return nil
}
