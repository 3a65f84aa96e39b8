package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRefreshTokenExpired(t *testing.T) {
	now := time.Now()
	token := RefreshToken{ExpiresAt: now.Add(time.Hour)}
	if token.Expired(now) {
		t.Fatal("token should not be expired before its expiry")
	}
	if !token.Expired(now.Add(2 * time.Hour)) {
		t.Fatal("token should be expired after its expiry")
	}
}

func TestRefreshTokenJSONHidesHash(t *testing.T) {
	token := RefreshToken{
		TokenHash: "deadbeef",
		ExpiresAt: time.Now(),
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(token)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if strings.Contains(body, "deadbeef") {
		t.Fatal("token hash must never appear in json output")
	}
	for _, key := range []string{"user_id", "expires_at", "created_at"} {
		if !strings.Contains(body, key) {
			t.Fatalf("expected snake_case key %q in %s", key, body)
		}
	}
}
