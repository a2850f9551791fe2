package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	tok, err := NewAccessToken(42, "rick@test.com", "user", "secret", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := Parse(tok, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Sub != 42 || claims.Email != "rick@test.com" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(42, "rick@test.com", "user", "secret", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse(tok, "other-secret"); err == nil {
		t.Error("token parsed with wrong secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tok, err := NewAccessToken(42, "rick@test.com", "user", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse(tok, "secret"); err == nil {
		t.Error("expired token parsed")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not.a.jwt", "secret"); err == nil {
		t.Error("garbage token parsed")
	}
}
