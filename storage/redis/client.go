package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/pkg/logger"
)

var (
	client    *redis.Client
	redisOnce sync.Once
	redisErr  error
)

func Init() error {
	redisOnce.Do(func() {
		cfg := config.Cfg

		client = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     50,
			MinIdleConns: 10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			redisErr = err
			logger.Logger.Error("Failed to connect to Redis", zap.Error(err))
			return
		}

		logger.Logger.Info("Redis initialized", zap.String("addr", cfg.RedisAddr))
	})

	return redisErr
}

func Client() *redis.Client {
	if client == nil {
		panic("redis client not initialized, call redis.Init() first")
	}
	return client
}

// Key builds a namespaced key so several environments can share one Redis.
func Key(parts ...string) string {
	key := config.Cfg.RedisPrefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
