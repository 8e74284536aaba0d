package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/internal/service"
	"staffpulse/pkg/response"
)

type createOrgRequest struct {
	Name     string `json:"name"`
	Plan     string `json:"plan"`
	Timezone string `json:"timezone"`
}

// CreateOrganization provisions a new tenant. API-key guarded, used by
// the onboarding tooling.
func CreateOrganization(ctx context.Context, c *app.RequestContext) {
	var req createOrgRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	org, err := service.GetOrganizationService().Create(ctx, req.Name, req.Plan, req.Timezone)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, org)
}

// GetOrganization returns the tenant the token is scoped to, with its
// plan limits.
func GetOrganization(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	limits := service.LimitsFor(org.Plan)
	response.SuccessWithMeta(ctx, c, org, map[string]interface{}{
		"limits": limits,
	})
}
