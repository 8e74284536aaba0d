package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/internal/queue"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/snowflake"
	"staffpulse/storage"
)

var version = "dev"

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := config.Cfg

	if err := snowflake.Init(cfg.SnowflakeMachineID, cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Logger.Info("Worker starting", zap.String("version", version))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			err := queue.StartCheckinResponseConsumer(ctx)
			if ctx.Err() != nil {
				return
			}
			logger.Logger.Error("Consumer exited, restarting", zap.Error(err))

			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
		}
	}()

	<-ctx.Done()
	logger.Logger.Info("Worker shutting down")
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	storage.Close(shutdownCtx)
}
