package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/internal/service"
	"staffpulse/pkg/response"
)

// CreateSchedule registers a one-off or weekly check-in schedule.
func CreateSchedule(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req service.CreateScheduleRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, err := service.GetScheduleService().Create(ctx, org, adminRef(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, record)
}

// ListSchedules returns the org's schedules, optionally by status.
func ListSchedules(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, total, err := service.GetScheduleService().List(ctx, org.ID, status, limit, offset)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, records, map[string]interface{}{
		"total": total,
	})
}

// GetSchedule returns one schedule by public id.
func GetSchedule(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	record, err := service.GetScheduleService().Get(ctx, org.ID, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, record)
}

// DeleteSchedule soft-deletes a schedule.
func DeleteSchedule(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	if err := service.GetScheduleService().Delete(ctx, org.ID, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
