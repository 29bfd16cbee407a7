package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/othello/internal/model"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, model.RulesCardinal, cfg.Rules)
	assert.Equal(t, DefaultBoardSize, cfg.BoardSize)
	assert.Nil(t, cfg.RandomSeed)
	assert.Zero(t, cfg.TokenCost)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(envFrom(map[string]string{
		"OTHELLO_HOST":        "127.0.0.1",
		"OTHELLO_PORT":        "9000",
		"STORAGE_TYPE":        "redis",
		"REDIS_URL":           "redis://localhost:6379/0",
		"OTHELLO_RULES":       "compass",
		"OTHELLO_BOARD_SIZE":  "6",
		"OTHELLO_RANDOM_SEED": "42",
		"OTHELLO_TOKEN_COST":  "4",
		"LOG_LEVEL":           "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, StorageTypeRedis, cfg.StorageType)
	assert.Equal(t, model.RulesCompass, cfg.Rules)
	assert.Equal(t, 6, cfg.BoardSize)
	require.NotNil(t, cfg.RandomSeed)
	assert.Equal(t, uint64(42), *cfg.RandomSeed)
	assert.Equal(t, 4, cfg.TokenCost)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadAcceptsLimits(t *testing.T) {
	for _, env := range []map[string]string{
		{"OTHELLO_BOARD_SIZE": "2", "OTHELLO_TOKEN_COST": "0"},
		{"OTHELLO_BOARD_SIZE": "26", "OTHELLO_TOKEN_COST": "31"},
	} {
		_, err := Load(envFrom(env))
		assert.NoError(t, err, env)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"OTHELLO_PORT": "http"}},
		{"port out of range", map[string]string{"OTHELLO_PORT": "70000"}},
		{"bad board size", map[string]string{"OTHELLO_BOARD_SIZE": "big"}},
		{"board size too small", map[string]string{"OTHELLO_BOARD_SIZE": "1"}},
		{"board size zero", map[string]string{"OTHELLO_BOARD_SIZE": "0"}},
		{"board size too large", map[string]string{"OTHELLO_BOARD_SIZE": "40"}},
		{"bad token cost", map[string]string{"OTHELLO_TOKEN_COST": "high"}},
		{"negative token cost", map[string]string{"OTHELLO_TOKEN_COST": "-1"}},
		{"token cost above bcrypt max", map[string]string{"OTHELLO_TOKEN_COST": "32"}},
		{"bad rules", map[string]string{"OTHELLO_RULES": "hex"}},
		{"negative seed", map[string]string{"OTHELLO_RANDOM_SEED": "-1"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "sqlite"}},
		{"redis without url", map[string]string{"STORAGE_TYPE": "redis"}},
		{"postgres without url", map[string]string{"STORAGE_TYPE": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(envFrom(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLogLevel("trace")
	assert.Error(t, err)
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
