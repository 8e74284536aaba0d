package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"staffpulse/pkg/logger"
	"staffpulse/pkg/response"
)

// Recover converts handler panics into 500 responses.
func Recover() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if r := recover(); r != nil {
				logger.Logger.Error("Handler panicked",
					zap.Any("panic", r),
					zap.ByteString("path", c.Path()),
					zap.ByteString("method", c.Method()),
				)
				c.JSON(http.StatusInternalServerError, response.ErrorResponse{
					Error: response.ErrorDetail{
						Code:    "INTERNAL_ERROR",
						Message: "Internal server error",
					},
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
