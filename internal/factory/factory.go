package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/mcoot/othello/internal/api/sse"
	"github.com/mcoot/othello/internal/config"
	"github.com/mcoot/othello/internal/dependencies/clock"
	"github.com/mcoot/othello/internal/dependencies/random"
	"github.com/mcoot/othello/internal/services/auth"
	"github.com/mcoot/othello/internal/services/bot"
	"github.com/mcoot/othello/internal/services/game"
	"github.com/mcoot/othello/internal/storage"
	"github.com/mcoot/othello/internal/storage/memory"
	"github.com/mcoot/othello/internal/storage/postgres"
	redisstorage "github.com/mcoot/othello/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresURL is the connection string (required if StorageType is "postgres")
	PostgresURL string
	// AuthConfig holds configuration for seat tokens (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds defaults for new games (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// RandomSeed seeds the bots' random source; nil uses crypto/rand
	RandomSeed *uint64
}

// FromServerConfig translates environment configuration into a factory Config
func FromServerConfig(sc *config.ServerConfig, logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: sc.StorageType,
		PostgresURL: sc.PostgresURL,
		AuthConfig:  auth.Config{Cost: sc.TokenCost},
		GameConfig: game.Config{
			BoardWidth:  sc.BoardSize,
			BoardHeight: sc.BoardSize,
			Rules:       sc.Rules,
		},
		RandomSeed: sc.RandomSeed,
	}
	if sc.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = sc.RedisURL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.RandomSeed != nil {
		rnd = random.NewSeeded(*cfg.RandomSeed)
	}

	gameCfg := cfg.GameConfig
	if gameCfg == (game.Config{}) {
		gameCfg = game.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, cfg.AuthConfig, gameCfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		return memory.New(), nil
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case config.StorageTypePostgres:
		if cfg.PostgresURL == "" {
			return nil, errors.New("PostgresURL required when StorageType is postgres")
		}
		return postgres.New(cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'postgres'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	strategies := bot.DefaultStrategies(rnd)
	names := slices.Sorted(maps.Keys(strategies))

	authService := auth.New(authCfg)
	gameController := game.NewController(store, authService, names, gameCfg, clk, logger)
	botService := bot.NewService(gameController, strategies, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		GameController: gameController,
		BotService:     botService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}

// Close releases the storage connection, if it holds one
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
