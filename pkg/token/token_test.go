package token

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestTokenPairRoundTrip(t *testing.T) {
	access, refresh, expiresIn, err := GenerateTokenPair("1234567890", "org-public-id")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty token pair")
	}
	if expiresIn <= 0 {
		t.Fatalf("expected positive expiry, got %d", expiresIn)
	}

	adminID, orgID, err := ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if adminID != "1234567890" || orgID != "org-public-id" {
		t.Fatalf("claims round-trip mismatch: %q %q", adminID, orgID)
	}

	adminID, orgID, err = ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if adminID != "1234567890" || orgID != "org-public-id" {
		t.Fatalf("refresh claims mismatch: %q %q", adminID, orgID)
	}
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	_, refresh, _, err := GenerateTokenPair("1", "org")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, _, err := ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token must not validate as an access token")
	}
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	access, _, _, err := GenerateTokenPair("1", "org")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, _, err := ValidateRefreshToken(access); err == nil {
		t.Fatal("access token must not validate as a refresh token")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, _, err := ValidateAccessToken("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
