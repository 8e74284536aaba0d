package mq

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/pkg/logger"
)

var (
	conn   *amqp.Connection
	connMu sync.RWMutex
	mqOnce sync.Once
	mqErr  error
)

const (
	CheckinExchange = "checkin.topic"
	EventsExchange  = "events.topic"
)

func Init() error {
	mqOnce.Do(func() {
		if err := connect(); err != nil {
			mqErr = err
			return
		}

		if err := declareTopology(); err != nil {
			mqErr = err
			return
		}

		if err := initPublisher(); err != nil {
			mqErr = err
			return
		}

		logger.Logger.Info("RabbitMQ initialized")
	})

	return mqErr
}

func connect() error {
	url := config.Cfg.GetRabbitMQURL()

	c, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
	})
	if err != nil {
		logger.Logger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	connMu.Lock()
	conn = c
	connMu.Unlock()

	go watchConnection(c)

	return nil
}

// watchConnection redials when the broker drops us. Channels are
// recreated lazily by their owners via Connection().
func watchConnection(c *amqp.Connection) {
	closeCh := c.NotifyClose(make(chan *amqp.Error, 1))
	err, ok := <-closeCh
	if !ok {
		return // deliberate shutdown
	}

	logger.Logger.Warn("RabbitMQ connection lost, reconnecting", zap.Error(err))

	for {
		time.Sleep(3 * time.Second)
		if dialErr := connect(); dialErr == nil {
			logger.Logger.Info("RabbitMQ reconnected")
			return
		}
	}
}

func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	if conn == nil {
		panic("rabbitmq not initialized, call mq.Init() first")
	}
	return conn
}

func declareTopology() error {
	ch, err := Connection().Channel()
	if err != nil {
		return fmt.Errorf("failed to open topology channel: %w", err)
	}
	defer ch.Close()

	for _, exchange := range []string{CheckinExchange, EventsExchange} {
		if err := ch.ExchangeDeclare(
			exchange,
			"topic",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
	}

	return nil
}

func Close() error {
	connMu.Lock()
	defer connMu.Unlock()

	closePublisher()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	conn = nil
	return err
}
