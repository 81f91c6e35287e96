package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/GrahamMcBain/urit/internal/factory"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/auth"
	redisstorage "github.com/GrahamMcBain/urit/internal/storage/redis"
)

// serverConfig is read from the environment, after an optional .env file
type serverConfig struct {
	Host           string  `env:"HOST"`
	Port           int     `env:"PORT" envDefault:"8080"`
	LogLevel       string  `env:"LOG_LEVEL" envDefault:"info"`
	StorageType    string  `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL       string  `env:"REDIS_URL"`
	AdminPlayerIDs []int64 `env:"ADMIN_PLAYER_IDS" envSeparator:","`
	APIKeyHash     string  `env:"API_KEY_HASH"`
	EventLogLimit  int     `env:"EVENT_LOG_LIMIT" envDefault:"1000"`
}

func loadConfig() (serverConfig, error) {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return serverConfig{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return serverConfig{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.StorageType == factory.StorageTypeRedis && cfg.RedisURL == "" {
		return serverConfig{}, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
	}
	return cfg, nil
}

func (c serverConfig) logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c serverConfig) factoryConfig(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:        logger,
		StorageType:   c.StorageType,
		EventLogLimit: c.EventLogLimit,
		AuthConfig: auth.Config{
			APIKeyHash: c.APIKeyHash,
		},
	}

	if len(c.AdminPlayerIDs) > 0 {
		fc.AuthConfig.AdminIDs = make([]model.PlayerID, len(c.AdminPlayerIDs))
		for i, id := range c.AdminPlayerIDs {
			fc.AuthConfig.AdminIDs[i] = model.PlayerID(id)
		}
	}

	if c.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.EventLogLimit = int64(c.EventLogLimit)
		fc.RedisConfig = &redisCfg
	}

	return fc
}
