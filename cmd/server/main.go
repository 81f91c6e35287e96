package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GrahamMcBain/urit/internal/api"
	"github.com/GrahamMcBain/urit/internal/factory"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.logLevel(),
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(cfg.factoryConfig(logger))
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	if app.AuthService.RequiresAPIKey() {
		logger.Info("API key required for protected routes")
	} else {
		logger.Warn("API_KEY_HASH not set, protected routes are open")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Clock:              app.Clock,
		AuthService:        app.AuthService,
		PlayerService:      app.PlayerService,
		GameController:     app.GameController,
		CycleScheduler:     app.CycleScheduler,
		LeaderboardService: app.LeaderboardService,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
