package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/internal/queue"
	"staffpulse/internal/service"
	"staffpulse/pkg/response"
)

// TriggerDispatch runs one dispatch pass on demand. The scheduler binary
// covers normal operation; this endpoint exists for ops.
func TriggerDispatch(ctx context.Context, c *app.RequestContext) {
	summary, ranAt, err := service.GetDispatchRunner().RunOnce(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	queue.PublishDispatchCompleted(ctx, ranAt, summary)

	response.Success(ctx, c, summary)
}
