package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tictacmatch/tictacmatch-go/internal/factory"
	"github.com/tictacmatch/tictacmatch-go/internal/server"
	"github.com/tictacmatch/tictacmatch-go/internal/services/matchmaking"
	redisstorage "github.com/tictacmatch/tictacmatch-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		ScoreFile:   os.Getenv("SCORE_FILE"),
		Matchmaking: matchmaking.DefaultConfig(),
	}
	if cfg.ScoreFile == "" {
		cfg.ScoreFile = "score.json"
	}
	if v := os.Getenv("FALLBACK_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid FALLBACK_DELAY", slog.String("value", v))
			os.Exit(1)
		}
		cfg.Matchmaking.FallbackDelay = d
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:         logger,
		WSHandler:      app.WSHandler,
		RankingService: app.RankingService,
	})

	serverConfig := server.DefaultConfig()
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", v))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	srv := server.New(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("server started", slog.String("addr", srv.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
