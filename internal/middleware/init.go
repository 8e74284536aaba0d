package middleware

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"

	"staffpulse/config"
)

// Register installs the global middleware chain. Order matters: recover
// first so everything downstream is covered.
func Register(h *server.Hertz, tracingCfg *hertztracing.Config) {
	h.Use(Recover())
	h.Use(CORS())

	if config.Cfg.OTelEnabled && tracingCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracingCfg))
	}

	h.Use(RateLimit())
}
