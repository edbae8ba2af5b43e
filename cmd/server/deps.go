package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mockinterview/backend/internal/infrastructure/config"
	"github.com/mockinterview/backend/internal/store"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func openKV(ctx context.Context, cfg *config.Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		kv, err := store.DialRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return kv, nil
	default:
		return store.NewSQLite(cfg.SQLitePath)
	}
}

// bootstrap loads config, builds the logger and opens the configured store.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, store.KV, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	kv, err := openKV(ctx, cfg)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, err
	}
	return cfg, logger, kv, nil
}
