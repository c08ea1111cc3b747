package api

import (
	"strings"
	"testing"
	"time"
)

func TestSessionTokenRoundtrip(t *testing.T) {
	token, err := MintSessionToken("student-42", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := parseAndValidateSession(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Sub != "student-42" {
		t.Fatalf("expected student-42, got %s", claims.Sub)
	}
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	token, err := MintSessionToken("student-42", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(token, ".")
	forged := parts[0] + "x." + parts[1]
	if _, err := parseAndValidateSession(forged); err == nil {
		t.Fatal("tampered payload must be rejected")
	}
	if _, err := parseAndValidateSession(parts[0]); err == nil {
		t.Fatal("token without a signature must be rejected")
	}
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	token, err := MintSessionToken("student-42", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := parseAndValidateSession(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
