package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"staffpulse/internal/cache"
	"staffpulse/internal/service"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
	"staffpulse/storage/mq"
)

// StartCheckinResponseConsumer blocks consuming inbound mood replies
// until ctx is cancelled.
func StartCheckinResponseConsumer(ctx context.Context) error {
	opts := mq.ConsumeOptions{
		Queue:      QueueCheckinResponses,
		Exchange:   mq.CheckinExchange,
		RoutingKey: RoutingKeyCheckinResponse,
		Prefetch:   20,
	}

	return mq.Consume(ctx, opts, handleCheckinResponse)
}

func handleCheckinResponse(ctx context.Context, delivery amqp.Delivery) error {
	var msg CheckinResponseMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		// malformed payloads are unprocessable, drop them
		logger.Logger.Error("Dropping malformed check-in response",
			zap.String("message_id", delivery.MessageId),
			zap.Error(err),
		)
		return &errors.SkipMessageError{Reason: "malformed payload"}
	}

	if msg.MessageID == "" {
		msg.MessageID = delivery.MessageId
	}

	// redelivery dedupe, keyed on the publisher-side message id
	ok, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID)
	if err != nil {
		return fmt.Errorf("failed to mark message processing: %w", err)
	}
	if !ok {
		return &errors.SkipMessageError{Reason: "duplicate delivery"}
	}

	if err := service.GetCheckinService().RecordResponse(ctx, msg.Phone, msg.Text, msg.Channel, msg.ReceivedAt); err != nil {
		if errors.IsSkip(err) {
			cache.MarkMessageProcessed(ctx, msg.MessageID)
			return err
		}
		cache.UnmarkMessageProcessing(ctx, msg.MessageID)
		return err
	}

	cache.MarkMessageProcessed(ctx, msg.MessageID)

	logger.Logger.Info("Check-in response recorded",
		zap.String("message_id", msg.MessageID),
		zap.String("channel", msg.Channel),
	)

	return nil
}
