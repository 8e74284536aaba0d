package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"staffpulse/pkg/logger"
	"staffpulse/storage/redis"
)

const (
	dispatchMarkTTL   = 48 * time.Hour
	messageDedupeTTL  = 24 * time.Hour
	messageMarkingTTL = 10 * time.Minute
)

// MarkDispatched records that a schedule fired on a given day. The DB
// claim is the arbiter; this mark only short-circuits repeat scans.
func MarkDispatched(ctx context.Context, day string, scheduleID int64) {
	key := redis.Key("dispatch", day, formatID(scheduleID))
	if err := redis.Client().Set(ctx, key, 1, dispatchMarkTTL).Err(); err != nil {
		logger.Logger.Warn("Failed to set dispatch mark",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func IsDispatched(ctx context.Context, day string, scheduleID int64) bool {
	key := redis.Key("dispatch", day, formatID(scheduleID))
	n, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		logger.Logger.Warn("Failed to check dispatch mark",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return n > 0
}

// TryMarkMessageProcessing claims an MQ message id for this consumer.
// Returns false when another consumer already holds or finished it.
func TryMarkMessageProcessing(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key("msg", messageID)
	return redis.Client().SetNX(ctx, key, "processing", messageMarkingTTL).Result()
}

// MarkMessageProcessed extends the mark so redeliveries keep being skipped.
func MarkMessageProcessed(ctx context.Context, messageID string) {
	key := redis.Key("msg", messageID)
	if err := redis.Client().Set(ctx, key, "done", messageDedupeTTL).Err(); err != nil {
		logger.Logger.Warn("Failed to mark message processed",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

// UnmarkMessageProcessing releases the claim after a handler failure so
// the requeued delivery can be retried.
func UnmarkMessageProcessing(ctx context.Context, messageID string) {
	key := redis.Key("msg", messageID)
	if err := redis.Client().Del(ctx, key).Err(); err != nil {
		logger.Logger.Warn("Failed to release message mark",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
