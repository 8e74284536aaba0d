package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/response"
	"staffpulse/storage/redis"
)

// RateLimit is a fixed-window per-client limiter backed by Redis.
// Redis being down fails open; limiting is protection, not correctness.
func RateLimit() app.HandlerFunc {
	rps := config.Cfg.RateLimitRPS

	return func(ctx context.Context, c *app.RequestContext) {
		if !config.Cfg.RateLimitEnabled {
			c.Next(ctx)
			return
		}

		clientKey := c.ClientIP()
		if adminID := AdminID(c); adminID != "" {
			clientKey = adminID
		}

		window := time.Now().Unix()
		key := redis.Key("ratelimit", clientKey, fmt.Sprintf("%d", window))

		count, err := redis.Client().Incr(ctx, key).Result()
		if err != nil {
			logger.Logger.Warn("Rate limiter unavailable, failing open", zap.Error(err))
			c.Next(ctx)
			return
		}
		if count == 1 {
			redis.Client().Expire(ctx, key, 2*time.Second)
		}

		if count > int64(rps) {
			response.Error(ctx, c, errors.RateLimitExceeded)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}
