package storage

import (
	"context"

	"go.uber.org/zap"

	"staffpulse/pkg/logger"
	"staffpulse/storage/database"
	"staffpulse/storage/mq"
	"staffpulse/storage/redis"
)

// Close tears the stores down in reverse order of Init.
func Close(ctx context.Context) {
	if err := mq.Close(); err != nil {
		logger.Logger.Error("Failed to close RabbitMQ connection", zap.Error(err))
	}

	if err := redis.Close(); err != nil {
		logger.Logger.Error("Failed to close Redis client", zap.Error(err))
	}

	if err := database.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close database", zap.Error(err))
	}
}
