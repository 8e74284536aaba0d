package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/internal/queue"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/response"
)

// whatsappWebhookPayload mirrors the Cloud API delivery shape, trimmed
// to the fields we read.
type whatsappWebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					ID        string `json:"id"`
					From      string `json:"from"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// VerifyWebhook answers the Cloud API subscription handshake.
func VerifyWebhook(ctx context.Context, c *app.RequestContext) {
	mode := c.Query("hub.mode")
	verifyToken := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || verifyToken != config.Cfg.WhatsAppWebhookToken {
		response.Error(ctx, c, errors.WebhookSignatureInvalid)
		return
	}

	c.String(http.StatusOK, "%s", challenge)
}

// ReceiveWebhook checks the payload signature and forwards each inbound
// text to the check-in response queue.
func ReceiveWebhook(ctx context.Context, c *app.RequestContext) {
	body := c.Request.Body()

	if !verifySignature(body, string(c.GetHeader("X-Hub-Signature-256"))) {
		logger.Logger.Warn("Webhook signature mismatch",
			zap.String("remote", c.ClientIP()),
		)
		response.Error(ctx, c, errors.WebhookSignatureInvalid)
		return
	}

	var payload whatsappWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	published := 0
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" {
					continue
				}

				receivedAt := time.Now().UTC()
				if ts, err := strconv.ParseInt(msg.Timestamp, 10, 64); err == nil {
					receivedAt = time.Unix(ts, 0).UTC()
				}

				err := queue.PublishCheckinResponse(ctx, &queue.CheckinResponseMessage{
					MessageID:  msg.ID,
					Phone:      normalizePhone(msg.From),
					Text:       msg.Text.Body,
					Channel:    "whatsapp",
					ReceivedAt: receivedAt,
				})
				if err != nil {
					logger.Logger.Error("Failed to enqueue check-in response",
						zap.String("message_id", msg.ID),
						zap.Error(err),
					)
					continue
				}
				published++
			}
		}
	}

	response.Success(ctx, c, map[string]interface{}{"accepted": published})
}

// verifySignature checks the X-Hub-Signature-256 HMAC over the raw body.
func verifySignature(body []byte, header string) bool {
	secret := config.Cfg.WebhookSecret
	if secret == "" {
		// unsigned mode for local development only
		return !config.Cfg.IsProduction()
	}

	signature := strings.TrimPrefix(header, "sha256=")
	if signature == header {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

// normalizePhone gives webhook sender ids the leading plus that the
// employee directory stores.
func normalizePhone(from string) string {
	if from == "" || strings.HasPrefix(from, "+") {
		return from
	}
	return "+" + from
}
