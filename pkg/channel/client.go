package channel

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/pkg/logger"
)

// Result is what a provider reports for one outbound message.
type Result struct {
	Accepted    bool   // provider took the message
	ProviderRef string // provider-side message id, when available
	Provider    string
}

// Client is the outbound message channel. One call, one recipient.
type Client interface {
	Send(ctx context.Context, phone, text string) (*Result, error)
}

var (
	channelClient Client
	channelOnce   sync.Once
	channelErr    error
)

// Init wires the configured provider.
func Init() error {
	channelOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.ChannelProvider {
		case "whatsapp":
			channelClient, channelErr = NewWhatsAppClient()
		case "sms":
			channelClient, channelErr = NewAliyunSMSClient()
		case "mock":
			channelClient = NewMockClient()
		default:
			channelErr = fmt.Errorf("unsupported channel provider: %s", cfg.ChannelProvider)
		}

		if channelErr != nil {
			logger.Logger.Error("Failed to initialize channel client", zap.Error(channelErr))
			return
		}

		logger.Logger.Info("Channel client initialized",
			zap.String("provider", cfg.ChannelProvider),
		)
	})

	return channelErr
}

func GetClient() Client {
	if channelClient == nil {
		panic("channel client not initialized, call channel.Init() first")
	}
	return channelClient
}

func Send(ctx context.Context, phone, text string) (*Result, error) {
	return GetClient().Send(ctx, phone, text)
}
