package channel

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/pkg/logger"
)

// WhatsAppClient talks to the Meta WhatsApp Cloud API.
type WhatsAppClient struct {
	http    *client.Client
	apiBase string
	phoneID string
	token   string
}

type waTextMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type waSendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func NewWhatsAppClient() (*WhatsAppClient, error) {
	cfg := config.Cfg

	// the Cloud API is https-only, so the client needs the standard dialer
	httpClient, err := client.NewClient(
		client.WithTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}),
		client.WithDialer(standard.NewDialer()),
		client.WithDialTimeout(5*time.Second),
		client.WithClientReadTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create whatsapp http client: %w", err)
	}

	return &WhatsAppClient{
		http:    httpClient,
		apiBase: cfg.WhatsAppAPIBase,
		phoneID: cfg.WhatsAppPhoneID,
		token:   cfg.WhatsAppAccessToken,
	}, nil
}

func (c *WhatsAppClient) Send(ctx context.Context, phone, text string) (*Result, error) {
	msg := waTextMessage{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "text",
	}
	msg.Text.Body = text

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal whatsapp message: %w", err)
	}

	req := &protocol.Request{}
	resp := &protocol.Response{}

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(fmt.Sprintf("%s/%s/messages", c.apiBase, c.phoneID))
	req.SetHeader("Authorization", "Bearer "+c.token)
	req.SetHeader("Content-Type", "application/json")
	req.SetBody(body)

	if err := c.http.Do(ctx, req, resp); err != nil {
		logger.Logger.Error("WhatsApp API request failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, fmt.Errorf("whatsapp send failed: %w", err)
	}

	var parsed waSendResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse whatsapp response: %w", err)
	}

	if resp.StatusCode() != consts.StatusOK || parsed.Error != nil {
		detail := ""
		if parsed.Error != nil {
			detail = parsed.Error.Message
		}
		logger.Logger.Error("WhatsApp API rejected message",
			zap.String("phone", phone),
			zap.Int("status", resp.StatusCode()),
			zap.String("detail", detail),
		)
		return &Result{Accepted: false, Provider: "whatsapp"}, nil
	}

	result := &Result{Accepted: true, Provider: "whatsapp"}
	if len(parsed.Messages) > 0 {
		result.ProviderRef = parsed.Messages[0].ID
	}

	logger.Logger.Debug("WhatsApp message accepted",
		zap.String("phone", phone),
		zap.String("provider_ref", result.ProviderRef),
	)

	return result, nil
}
