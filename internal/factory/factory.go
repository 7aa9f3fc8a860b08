// Package factory wires the application graph: storage, external
// dependencies, services, and the websocket handler.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/clock"
	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/random"
	"github.com/tictacmatch/tictacmatch-go/internal/services/auth"
	"github.com/tictacmatch/tictacmatch-go/internal/services/bots"
	"github.com/tictacmatch/tictacmatch-go/internal/services/matchmaking"
	"github.com/tictacmatch/tictacmatch-go/internal/services/ranking"
	"github.com/tictacmatch/tictacmatch-go/internal/services/scores"
	"github.com/tictacmatch/tictacmatch-go/internal/services/sessions"
	"github.com/tictacmatch/tictacmatch-go/internal/storage"
	filestorage "github.com/tictacmatch/tictacmatch-go/internal/storage/file"
	"github.com/tictacmatch/tictacmatch-go/internal/storage/memory"
	redisstorage "github.com/tictacmatch/tictacmatch-go/internal/storage/redis"
	"github.com/tictacmatch/tictacmatch-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoresService      *scores.Service
	AuthService        *auth.Service
	SessionRegistry    *sessions.Registry
	BotService         *bots.Service
	MatchmakingService *matchmaking.Service
	RankingService     *ranking.Service

	// Transport
	WSHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// ScoreFile is the score snapshot path (required if StorageType is "file")
	ScoreFile string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Matchmaking holds queue settings (optional)
	// If zero value, defaults to matchmaking.DefaultConfig()
	Matchmaking matchmaking.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	var store storage.Store
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		if cfg.ScoreFile == "" {
			return nil, errors.New("ScoreFile required when StorageType is file")
		}
		store = filestorage.New(cfg.ScoreFile)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(ctx, store, clk, rnd, cfg.Matchmaking, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	ctx context.Context,
	store storage.Store,
	clk clock.Clock,
	rnd random.Random,
	matchCfg matchmaking.Config,
	logger *slog.Logger,
) *App {
	scoresService := scores.New(ctx, store, logger)
	authService := auth.New(scoresService, logger)
	registry := sessions.NewRegistry(logger)
	botService := bots.New(scoresService, rnd, logger)
	matchmakingService := matchmaking.New(registry, botService, clk, rnd, matchCfg, logger)
	rankingService := ranking.New(scoresService, registry, clk, logger)
	wsHandler := ws.NewHandler(authService, matchmakingService, registry, botService, rankingService, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		ScoresService:      scoresService,
		AuthService:        authService,
		SessionRegistry:    registry,
		BotService:         botService,
		MatchmakingService: matchmakingService,
		RankingService:     rankingService,
		WSHandler:          wsHandler,
	}
}
