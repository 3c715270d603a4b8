package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/bankfinder/internal/config"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/store"
	"github.com/MrSnakeDoc/bankfinder/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/bankfinder/internal/store/redis"
	"github.com/MrSnakeDoc/bankfinder/internal/store/sqlite"
)

// openStorage connects the configured KV backend. A nil Locker means the
// in-process one.
func openStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (store.KV, store.Locker, error) {
	switch cfg.Storage {
	case config.BackendMemory:
		log.Warn("memory storage selected, favorites and theme are lost on exit")
		return memory.New(), nil, nil

	case config.BackendRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("Redis initialized successfully")
		return redisstore.NewKV(client), redisstore.NewLocker(client, cfg.LockTTL, log), nil

	case config.BackendSQLite:
		kv, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("sqlite storage opened", logger.String("path", kv.Path()))
		return kv, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
