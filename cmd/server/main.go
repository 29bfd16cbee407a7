package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/othello/internal/api"
	"github.com/mcoot/othello/internal/config"
	"github.com/mcoot/othello/internal/factory"
)

const hubCleanupInterval = 5 * time.Minute

func main() {
	os.Exit(run())
}

// run starts the server and blocks until it stops, returning the exit code.
// Deferred cleanup runs before main exits.
func run() int {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	// Set up logging with JSON output
	logger, err := config.NewLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	// Create application factory
	app, err := factory.New(factory.FromServerConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Listen(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return 1
	}

	// Drop event hubs nobody is listening to
	go app.HubManager.RunCleanup(ctx, hubCleanupInterval)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.String("rules", string(cfg.Rules)),
		slog.Int("board_size", cfg.BoardSize),
		slog.Any("strategies", app.BotService.Strategies()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		logger.Info("closing event streams", slog.Int("hubs", app.HubManager.HubCount()))
		app.HubManager.CloseAll()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}
