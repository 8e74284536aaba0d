package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
)

// ConsumeOptions describes one queue bound to one exchange.
type ConsumeOptions struct {
	Queue      string
	Exchange   string
	RoutingKey string
	Prefetch   int
}

// Handler processes one delivery. A nil return acks, a SkipMessageError
// acks without processing, any other error nacks with requeue.
type Handler func(ctx context.Context, msg amqp.Delivery) error

// Consume declares and binds the queue, then blocks delivering messages
// to the handler until ctx is cancelled.
func Consume(ctx context.Context, opts ConsumeOptions, handler Handler) error {
	ch, err := Connection().Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	defer ch.Close()

	prefetch := opts.Prefetch
	if prefetch <= 0 {
		prefetch = 10
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	queue, err := ch.QueueDeclare(
		opts.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", opts.Queue, err)
	}

	if err := ch.QueueBind(queue.Name, opts.RoutingKey, opts.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", opts.Queue, err)
	}

	deliveries, err := ch.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", opts.Queue, err)
	}

	logger.Logger.Info("Consumer started",
		zap.String("queue", opts.Queue),
		zap.String("routing_key", opts.RoutingKey),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info("Consumer stopping", zap.String("queue", opts.Queue))
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", opts.Queue)
			}
			handleDelivery(ctx, msg, handler, opts.Queue)
		}
	}
}

func handleDelivery(ctx context.Context, msg amqp.Delivery, handler Handler, queue string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("Consumer handler panicked",
				zap.String("queue", queue),
				zap.Any("panic", r),
			)
			_ = msg.Nack(false, true)
		}
	}()

	err := handler(ctx, msg)
	if err == nil {
		_ = msg.Ack(false)
		return
	}

	if errors.IsSkip(err) {
		logger.Logger.Debug("Message skipped",
			zap.String("queue", queue),
			zap.String("message_id", msg.MessageId),
			zap.String("reason", err.Error()),
		)
		_ = msg.Ack(false)
		return
	}

	logger.Logger.Error("Message handling failed, requeueing",
		zap.String("queue", queue),
		zap.String("message_id", msg.MessageId),
		zap.Error(err),
	)
	_ = msg.Nack(false, !msg.Redelivered)
}
