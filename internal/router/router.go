package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"staffpulse/internal/handler"
	"staffpulse/internal/middleware"
)

// Register wires every route. Grouped by auth mode: public webhook,
// API-key ops routes, and JWT admin routes.
func Register(h *server.Hertz) {
	h.GET("/healthz", healthz)

	v1 := h.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/token", handler.ExchangeToken)
	auth.POST("/refresh", handler.RefreshToken)

	webhooks := v1.Group("/webhooks")
	webhooks.GET("/whatsapp", handler.VerifyWebhook)
	webhooks.POST("/whatsapp", handler.ReceiveWebhook)

	ops := v1.Group("/ops", middleware.APIKey())
	ops.POST("/organizations", handler.CreateOrganization)
	ops.POST("/dispatch", handler.TriggerDispatch)

	admin := v1.Group("", middleware.Auth())
	admin.GET("/organization", handler.GetOrganization)

	admin.POST("/employees", handler.CreateEmployee)
	admin.GET("/employees", handler.ListEmployees)
	admin.DELETE("/employees/:id", handler.DeactivateEmployee)

	admin.POST("/schedules", handler.CreateSchedule)
	admin.GET("/schedules", handler.ListSchedules)
	admin.GET("/schedules/:id", handler.GetSchedule)
	admin.DELETE("/schedules/:id", handler.DeleteSchedule)

	admin.GET("/reports/checkins", handler.ExportCheckins)
}

func healthz(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}
