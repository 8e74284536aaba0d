package middleware

import (
	"github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
)

// ServerTracing builds the hertz tracer wired to the global otel
// providers set up in pkg/otel.
func ServerTracing() (config.Option, *hertztracing.Config) {
	return hertztracing.NewServerTracer()
}
