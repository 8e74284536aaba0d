package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"staffpulse/config"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	origSecret := config.Cfg.WebhookSecret
	origEnv := config.Cfg.Environment
	defer func() {
		config.Cfg.WebhookSecret = origSecret
		config.Cfg.Environment = origEnv
	}()

	config.Cfg.WebhookSecret = "test-secret"
	body := []byte(`{"entry":[]}`)

	if !verifySignature(body, sign("test-secret", body)) {
		t.Error("valid signature rejected")
	}
	if verifySignature(body, sign("wrong-secret", body)) {
		t.Error("signature with wrong secret accepted")
	}
	if verifySignature(body, "sha256=deadbeef") {
		t.Error("bogus signature accepted")
	}
	if verifySignature(body, hex.EncodeToString([]byte("no prefix"))) {
		t.Error("unprefixed header accepted")
	}

	// unsigned mode only outside production
	config.Cfg.WebhookSecret = ""
	config.Cfg.Environment = "development"
	if !verifySignature(body, "") {
		t.Error("development without a secret should accept unsigned payloads")
	}
	config.Cfg.Environment = "production"
	if verifySignature(body, "") {
		t.Error("production without a secret must reject everything")
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := normalizePhone("15551234567"); got != "+15551234567" {
		t.Errorf("normalizePhone = %q", got)
	}
	if got := normalizePhone("+15551234567"); got != "+15551234567" {
		t.Errorf("normalizePhone altered prefixed number: %q", got)
	}
	if got := normalizePhone(""); got != "" {
		t.Errorf("normalizePhone(\"\") = %q", got)
	}
}
