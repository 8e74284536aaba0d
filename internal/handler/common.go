package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/internal/middleware"
	"staffpulse/internal/model"
	"staffpulse/internal/service"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/snowflake"
)

// requestOrg resolves the organization the JWT is scoped to.
func requestOrg(ctx context.Context, c *app.RequestContext) (*model.Organization, error) {
	publicID := middleware.OrgID(c)
	if publicID == "" {
		return nil, errors.Unauthorized
	}
	return service.GetOrganizationService().GetByPublicID(ctx, publicID)
}

// adminRef is the snowflake id stamped into created_by. The id was
// validated as numeric when the token was issued.
func adminRef(c *app.RequestContext) int64 {
	id, _ := snowflake.ParseID(middleware.AdminID(c))
	return id
}
