package handler

import (
	"context"
	"crypto/subtle"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/config"
	"staffpulse/internal/service"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/response"
	"staffpulse/pkg/snowflake"
	"staffpulse/pkg/token"
)

type tokenRequest struct {
	APIKey         string `json:"api_key"`
	AdminID        string `json:"admin_id"`
	OrganizationID string `json:"organization_id"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeToken trades the admin API key for a JWT pair scoped to one
// organization.
func ExchangeToken(ctx context.Context, c *app.RequestContext) {
	var req tokenRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	configured := config.Cfg.AdminAPIKey
	if configured == "" ||
		subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(configured)) != 1 {
		response.Error(ctx, c, errors.InvalidAPIKey)
		return
	}

	if _, err := snowflake.ParseID(req.AdminID); err != nil {
		response.Error(ctx, c, errors.InvalidAdminID)
		return
	}

	org, err := service.GetOrganizationService().GetByPublicID(ctx, req.OrganizationID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	access, refresh, expiresIn, err := token.GenerateTokenPair(req.AdminID, org.PublicID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	})
}

// RefreshToken issues a fresh pair from a valid refresh token.
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req refreshRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	adminID, orgID, err := token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	access, refresh, expiresIn, err := token.GenerateTokenPair(adminID, orgID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	})
}
