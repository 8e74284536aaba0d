package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"staffpulse/pkg/logger"
)

var (
	publishCh *amqp.Channel
	publishMu sync.RWMutex
)

func initPublisher() error {
	return recreatePublisherChannel()
}

func recreatePublisherChannel() error {
	publishMu.Lock()
	defer publishMu.Unlock()

	ch, err := Connection().Channel()
	if err != nil {
		return fmt.Errorf("failed to open publisher channel: %w", err)
	}

	publishCh = ch
	return nil
}

func getPublisherChannel() (*amqp.Channel, error) {
	publishMu.RLock()
	ch := publishCh
	publishMu.RUnlock()

	if ch != nil && !ch.IsClosed() {
		return ch, nil
	}

	if err := recreatePublisherChannel(); err != nil {
		return nil, err
	}

	publishMu.RLock()
	defer publishMu.RUnlock()
	return publishCh, nil
}

// PublishMessage sends a persistent message to an exchange.
func PublishMessage(ctx context.Context, exchange, routingKey, messageID string, body []byte) error {
	ch, err := getPublisherChannel()
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(pubCtx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		logger.Logger.Error("Failed to publish message",
			zap.String("exchange", exchange),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Logger.Debug("Message published",
		zap.String("exchange", exchange),
		zap.String("routing_key", routingKey),
		zap.String("message_id", messageID),
	)

	return nil
}

func closePublisher() {
	publishMu.Lock()
	defer publishMu.Unlock()

	if publishCh != nil {
		_ = publishCh.Close()
		publishCh = nil
	}
}
