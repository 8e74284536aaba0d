package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/internal/middleware"
	"staffpulse/internal/router"
	"staffpulse/pkg/channel"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/metrics"
	"staffpulse/pkg/otel"
	"staffpulse/pkg/snowflake"
	"staffpulse/pkg/token"
	"staffpulse/storage"
)

// set via -ldflags at build time
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

	if err := token.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize token generator", zap.Error(err))
	}

	if err := channel.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize channel client", zap.Error(err))
	}

	var otelShutdown func(context.Context) error
	var tracingCfg *hertztracing.Config

	serverOpts := []hertzconfig.Option{
		server.WithHostPorts(cfg.ServerHost + ":" + cfg.ServerPort),
		server.WithExitWaitTime(5 * time.Second),
	}

	if cfg.OTelEnabled {
		var err error
		otelShutdown, err = otel.InitOpenTelemetry(context.Background(), otel.Config{
			ServiceName:    cfg.ServiceName,
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

		var tracer hertzconfig.Option
		tracer, tracingCfg = middleware.ServerTracing()
		serverOpts = append(serverOpts, tracer)
	}

	h := server.New(serverOpts...)

	middleware.Register(h, tracingCfg)
	router.Register(h)

	logger.Logger.Info("API server starting",
		zap.String("addr", cfg.ServerHost+":"+cfg.ServerPort),
		zap.String("version", version),
	)

	h.Spin()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Logger.Error("OpenTelemetry shutdown error", zap.Error(err))
		}
	}
	storage.Close(shutdownCtx)

	logger.Logger.Info("API server stopped")
}
