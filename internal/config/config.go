package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/othello/internal/model"
)

// Storage backends
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

const (
	DefaultPort      = 8080
	DefaultBoardSize = 8
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	Host        string
	Port        int
	StorageType string
	RedisURL    string
	PostgresURL string

	Rules     model.Rules
	BoardSize int

	// RandomSeed makes bot play reproducible when set
	RandomSeed *uint64
	// TokenCost is the bcrypt cost for seat tokens; 0 uses the default
	TokenCost int

	LogLevel string
}

// LoadServerConfig loads configuration from the process environment.
func LoadServerConfig() (*ServerConfig, error) {
	return Load(os.Getenv)
}

// Load builds a ServerConfig from getenv, applying defaults for unset keys.
func Load(getenv func(string) string) (*ServerConfig, error) {
	cfg := &ServerConfig{
		Host:        getenv("OTHELLO_HOST"),
		Port:        DefaultPort,
		StorageType: getenv("STORAGE_TYPE"),
		RedisURL:    getenv("REDIS_URL"),
		PostgresURL: getenv("POSTGRES_URL"),
		Rules:       model.RulesCardinal,
		BoardSize:   DefaultBoardSize,
		LogLevel:    getenv("LOG_LEVEL"),
	}

	var err error
	if cfg.Port, err = intFromEnv(getenv, "OTHELLO_PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("OTHELLO_PORT out of range: %d", cfg.Port)
	}

	if cfg.BoardSize, err = intFromEnv(getenv, "OTHELLO_BOARD_SIZE", DefaultBoardSize); err != nil {
		return nil, err
	}
	if cfg.BoardSize < model.MinBoardDimension || cfg.BoardSize > model.MaxBoardDimension {
		return nil, fmt.Errorf("OTHELLO_BOARD_SIZE must be between %d and %d: %d",
			model.MinBoardDimension, model.MaxBoardDimension, cfg.BoardSize)
	}

	if cfg.TokenCost, err = intFromEnv(getenv, "OTHELLO_TOKEN_COST", 0); err != nil {
		return nil, err
	}
	// 0 keeps the auth default; anything else must be a cost bcrypt accepts
	if cfg.TokenCost < 0 || cfg.TokenCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("OTHELLO_TOKEN_COST must be between 0 and %d: %d", bcrypt.MaxCost, cfg.TokenCost)
	}

	if raw := getenv("OTHELLO_RULES"); raw != "" {
		if cfg.Rules, err = model.ParseRules(raw); err != nil {
			return nil, fmt.Errorf("OTHELLO_RULES: %w", err)
		}
	}

	if raw := getenv("OTHELLO_RANDOM_SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("OTHELLO_RANDOM_SEED must be an unsigned integer: %w", err)
		}
		cfg.RandomSeed = &seed
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *ServerConfig) validateStorage() error {
	switch c.StorageType {
	case "":
		c.StorageType = StorageTypeMemory
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=%s", StorageTypeRedis)
		}
	case StorageTypePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL required when STORAGE_TYPE=%s", StorageTypePostgres)
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, redis or postgres", c.StorageType)
	}
	return nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func intFromEnv(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
