package utils

import (
	"testing"
	"time"

	"vytara-server/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 5}
	token, expires, err := GenerateToken("alice", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expires) <= 0 || time.Until(expires) > 5*time.Minute {
		t.Errorf("expires = %v", expires)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "alice" || claims.Subject != "alice" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token signed with another secret accepted")
	}
	if _, err := ValidateToken("not-a-token", "test-secret"); err == nil {
		t.Error("garbage accepted")
	}
}
