package token

import (
	"testing"
	"time"
)

func TestSignParseRoundTrip(t *testing.T) {
	raw, err := Sign("secret", "u1", "employer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := Parse("secret", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "employer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	raw, err := Sign("secret", "u1", "seeker", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Parse("other", raw); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	raw, err := Sign("secret", "u1", "seeker", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Parse("secret", raw); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse("secret", "not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
