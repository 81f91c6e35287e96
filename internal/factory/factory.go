package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/services/auth"
	"github.com/GrahamMcBain/urit/internal/services/cycle"
	"github.com/GrahamMcBain/urit/internal/services/game"
	"github.com/GrahamMcBain/urit/internal/services/leaderboard"
	"github.com/GrahamMcBain/urit/internal/services/players"
	"github.com/GrahamMcBain/urit/internal/storage"
	"github.com/GrahamMcBain/urit/internal/storage/memory"
	redisstorage "github.com/GrahamMcBain/urit/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Logger *slog.Logger

	// Services
	AuthService        *auth.Service
	PlayerService      *players.Service
	GameController     *game.Controller
	CycleScheduler     *cycle.Scheduler
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds the admin allow-list and API key hash (optional)
	// If AdminIDs is nil, auth.DefaultAdminIDs is used
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// EventLogLimit caps the in-memory tag event log (optional)
	EventLogLimit int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		if cfg.EventLogLimit > 0 {
			store = memory.NewWithEventLimit(cfg.EventLogLimit)
		} else {
			store = memory.New()
		}
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
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	logger.Info("storage initialised", slog.String("type", storageType))

	return newWithDependencies(store, clock.New(), cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	return &App{
		Storage:            store,
		Clock:              clk,
		Logger:             logger,
		AuthService:        auth.New(authCfg),
		PlayerService:      players.New(store, clk, logger),
		GameController:     game.NewController(store, clk, logger),
		CycleScheduler:     cycle.New(store, clk, logger),
		LeaderboardService: leaderboard.New(store, clk, logger),
	}
}

// Close releases the storage backend's connections, if it holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
