package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/config"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/response"
	"staffpulse/pkg/token"
)

const (
	CtxAdminID = "admin_id"
	CtxOrgID   = "org_id"
)

// Auth guards admin routes with a Bearer access token.
func Auth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		header := string(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(ctx, c, errors.Unauthorized)
			c.Abort()
			return
		}

		adminID, orgID, err := token.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(ctx, c, errors.Unauthorized)
			c.Abort()
			return
		}

		c.Set(CtxAdminID, adminID)
		c.Set(CtxOrgID, orgID)
		c.Next(ctx)
	}
}

// APIKey guards provisioning and ops routes with the shared admin key.
func APIKey() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		configured := config.Cfg.AdminAPIKey
		provided := string(c.GetHeader("X-Admin-Key"))

		if configured == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
			response.Error(ctx, c, errors.InvalidAPIKey)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

// AdminID reads the authenticated admin id set by Auth.
func AdminID(c *app.RequestContext) string {
	return c.GetString(CtxAdminID)
}

// OrgID reads the authenticated org scope set by Auth.
func OrgID(c *app.RequestContext) string {
	return c.GetString(CtxOrgID)
}
