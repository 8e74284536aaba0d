package cache

import (
	"context"
	"strconv"
	"time"

	"staffpulse/storage/redis"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// TryLock takes a best-effort distributed lock. Callers must tolerate
// losing the lock; correctness comes from the DB claim, not from here.
func TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	key := redis.Key("lock", name)
	return redis.Client().SetNX(ctx, key, 1, ttl).Result()
}

func Unlock(ctx context.Context, name string) error {
	key := redis.Key("lock", name)
	return redis.Client().Del(ctx, key).Err()
}
