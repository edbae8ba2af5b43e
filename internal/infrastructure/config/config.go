package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	ServerAddress   string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Persistence
	StoreBackend  string `validate:"oneof=sqlite redis"`
	SQLitePath    string `validate:"required_if=StoreBackend sqlite"`
	RedisAddr     string `validate:"required_if=StoreBackend redis"`
	RedisPassword string
	RedisDB       int    `validate:"gte=0"`
	StateKey      string `validate:"required"`

	TickInterval   time.Duration `validate:"gte=1s"`
	AllowedOrigins []string      `validate:"min=1,dive,required"`
	MaxResumeBytes int64         `validate:"gt=0"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

// Load reads the environment, after applying a .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}
	cfg := &Config{
		ServerAddress:   r.str("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		StoreBackend:    strings.ToLower(r.str("STORE_BACKEND", BackendSQLite)),
		SQLitePath:      r.str("SQLITE_PATH", "interview.db"),
		RedisAddr:       r.str("REDIS_ADDR", ""),
		RedisPassword:   r.str("REDIS_PASSWORD", ""),
		RedisDB:         int(r.int("REDIS_DB", 0)),
		StateKey:        r.str("STATE_KEY", "interview-data-v1"),
		TickInterval:    r.duration("TICK_INTERVAL", time.Second),
		AllowedOrigins:  r.list("ALLOWED_ORIGINS", []string{"*"}),
		MaxResumeBytes:  r.int("MAX_RESUME_BYTES", 5<<20),
		LogLevel:        strings.ToLower(r.str("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(r.str("LOG_FORMAT", "json")),
	}
	if r.err != nil {
		return nil, r.err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// reader keeps the first parse error so Load reports it instead of
// silently falling back.
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) str(k, fallback string) string {
	if v := strings.TrimSpace(r.getenv(k)); v != "" {
		return v
	}
	return fallback
}

func (r *reader) duration(k string, fallback time.Duration) time.Duration {
	v := r.str(k, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d
}

func (r *reader) int(k string, fallback int64) int64 {
	v := r.str(k, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("config: %s=%q is not a valid integer: %w", k, v, err)
	}
	return n
}

func (r *reader) list(k string, fallback []string) []string {
	v := r.str(k, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
