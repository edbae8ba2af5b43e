package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockinterview/backend/internal/infrastructure/config"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, config.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "interview.db", cfg.SQLitePath)
	assert.Equal(t, "interview-data-v1", cfg.StateKey)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(5<<20), cfg.MaxResumeBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		"SERVER_ADDRESS":  "127.0.0.1:9000",
		"STORE_BACKEND":   "Redis",
		"REDIS_ADDR":      "localhost:6379",
		"REDIS_DB":        "2",
		"TICK_INTERVAL":   "2s",
		"ALLOWED_ORIGINS": "http://a.test, http://b.test,",
		"LOG_LEVEL":       "DEBUG",
		"LOG_FORMAT":      "console",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, config.BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad duration":        {"SHUTDOWN_TIMEOUT": "soon"},
		"bad int":             {"MAX_RESUME_BYTES": "lots"},
		"unknown backend":     {"STORE_BACKEND": "mongo"},
		"redis without addr":  {"STORE_BACKEND": "redis"},
		"tick too fast":       {"TICK_INTERVAL": "100ms"},
		"unknown level":       {"LOG_LEVEL": "verbose"},
		"negative resume cap": {"MAX_RESUME_BYTES": "-1"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromEnv(env(vars))
			assert.Error(t, err)
		})
	}
}
