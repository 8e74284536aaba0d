package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/internal/service"
	"staffpulse/pkg/response"
)

func CreateEmployee(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req service.CreateEmployeeRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	employee, err := service.GetEmployeeService().Create(ctx, org, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, employee)
}

func ListEmployees(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	employees, total, err := service.GetEmployeeService().List(ctx, org.ID, limit, offset)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, employees, map[string]interface{}{
		"total": total,
	})
}

// DeactivateEmployee removes an employee from future dispatches without
// deleting their check-in history.
func DeactivateEmployee(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	if err := service.GetEmployeeService().Deactivate(ctx, org.ID, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
