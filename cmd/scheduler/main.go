package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/internal/cache"
	"staffpulse/internal/queue"
	"staffpulse/internal/service"
	"staffpulse/pkg/channel"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/metrics"
	"staffpulse/pkg/otel"
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

	if err := channel.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize channel client", zap.Error(err))
	}

	var otelShutdown func(context.Context) error
	if cfg.OTelEnabled {
		var err error
		otelShutdown, err = otel.InitOpenTelemetry(context.Background(), otel.Config{
			ServiceName:    cfg.ServiceName + "-scheduler",
			ServiceVersion: version,
			Environment:    cfg.Environment,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SampleRatio:    cfg.SampleRatio,
		})
		if err != nil {
			logger.Logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
		}

		if err := metrics.InitMetrics(); err != nil {
			logger.Logger.Fatal("Failed to initialize metrics", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.DispatchIntervalSeconds) * time.Second
	logger.Logger.Info("Scheduler starting",
		zap.Duration("interval", interval),
		zap.String("version", version),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// fire once at startup so a restart never waits a full interval
	runDispatch(ctx, interval)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			runDispatch(ctx, interval)
		}
	}

	logger.Logger.Info("Scheduler shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Logger.Error("OpenTelemetry shutdown error", zap.Error(err))
		}
	}
	storage.Close(shutdownCtx)
}

// runDispatch executes one pass, guarded by a best-effort distributed
// lock so replicated schedulers do not scan in lockstep. The DB claim
// still guarantees exactly-once if the lock is lost.
func runDispatch(ctx context.Context, interval time.Duration) {
	lockTTL := interval / 2
	if lockTTL < 5*time.Second {
		lockTTL = 5 * time.Second
	}

	locked, err := cache.TryLock(ctx, "dispatch-run", lockTTL)
	if err != nil {
		logger.Logger.Warn("Dispatch lock unavailable, proceeding anyway", zap.Error(err))
	} else if !locked {
		logger.Logger.Debug("Another scheduler holds the dispatch lock, skipping tick")
		return
	}

	summary, ranAt, err := service.GetDispatchRunner().RunOnce(ctx)
	if err != nil {
		logger.Logger.Error("Dispatch run failed", zap.Error(err))
		return
	}

	if summary.Processed > 0 || summary.RecordFailures > 0 {
		queue.PublishDispatchCompleted(ctx, ranAt, summary)
	}
}
