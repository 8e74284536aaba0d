package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffpulse/internal/dispatch"
	"staffpulse/pkg/logger"
	"staffpulse/storage/mq"
)

// PublishCheckinResponse hands an inbound mood reply to the worker.
func PublishCheckinResponse(ctx context.Context, msg *CheckinResponseMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now().UTC()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal check-in response: %w", err)
	}

	return mq.PublishMessage(ctx, mq.CheckinExchange, RoutingKeyCheckinResponse, msg.MessageID, body)
}

// PublishDispatchCompleted emits the post-run event. Best effort: a
// broker hiccup must not fail the dispatch itself.
func PublishDispatchCompleted(ctx context.Context, ranAt time.Time, summary dispatch.Summary) {
	event := DispatchCompletedEvent{
		EventID:           uuid.NewString(),
		RanAt:             ranAt,
		Processed:         summary.Processed,
		RecipientFailures: summary.RecipientFailures,
		RecordFailures:    summary.RecordFailures,
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error("Failed to marshal dispatch event", zap.Error(err))
		return
	}

	if err := mq.PublishMessage(ctx, mq.EventsExchange, RoutingKeyDispatchDone, event.EventID, body); err != nil {
		logger.Logger.Warn("Failed to publish dispatch event", zap.Error(err))
	}
}
