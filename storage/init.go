package storage

import (
	"fmt"

	"staffpulse/storage/database"
	"staffpulse/storage/mq"
	"staffpulse/storage/redis"
)

// Init brings up every backing store the process needs.
func Init() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("database init: %w", err)
	}

	if err := redis.Init(); err != nil {
		return fmt.Errorf("redis init: %w", err)
	}

	if err := mq.Init(); err != nil {
		return fmt.Errorf("rabbitmq init: %w", err)
	}

	return nil
}
