package handler

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/internal/service"
	"staffpulse/pkg/response"
	"staffpulse/utils"
)

// ExportCheckins streams the org's check-in history as CSV.
// ?from=2026-01-01&to=2026-01-31, defaulting to the last 30 days.
func ExportCheckins(ctx context.Context, c *app.RequestContext) {
	org, err := requestOrg(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	now := time.Now().UTC()
	from := utils.StartOfDay(now.AddDate(0, 0, -30))
	to := utils.StartOfDay(now)

	if v := c.Query("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			from = parsed
		}
	}
	if v := c.Query("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			to = parsed
		}
	}

	var buf bytes.Buffer
	if err := service.GetReportService().ExportCheckinsCSV(ctx, org, from, to, &buf); err != nil {
		response.Error(ctx, c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="checkins.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
