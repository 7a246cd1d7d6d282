package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"adminbase/internal/errs"
)

func TestTokenPairLifecycle(t *testing.T) {
	svc, err := NewTokenService("test-secret", "issuer", time.Minute*30, time.Hour*24)
	if err != nil {
		t.Fatalf("unexpected error creating token service: %v", err)
	}

	pair, err := svc.IssuePair(42)
	if err != nil {
		t.Fatalf("unexpected error issuing token pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected non-empty token pair")
	}
	if !strings.HasPrefix(pair.AccessToken, SchemePrefix) {
		t.Fatalf("expected access token with scheme prefix, got %q", pair.AccessToken)
	}

	userID, err := svc.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error verifying access token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}

	// 刷新令牌不带前缀，同样可校验
	userID, err = svc.Verify(pair.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error verifying refresh token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestVerifyCollapsesAllFailures(t *testing.T) {
	svc, err := NewTokenService("test-secret", "issuer", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating token service: %v", err)
	}

	expiredToken, err := svc.sign(7, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error signing expired token: %v", err)
	}

	otherSvc, err := NewTokenService("other-secret", "issuer", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating token service: %v", err)
	}
	foreignPair, err := otherSvc.IssuePair(7)
	if err != nil {
		t.Fatalf("unexpected error issuing foreign token: %v", err)
	}

	cases := map[string]string{
		"expired":         SchemePrefix + expiredToken,
		"wrong signature": foreignPair.AccessToken,
		"malformed":       "Bearer not-a-token",
		"empty":           "",
	}
	for name, raw := range cases {
		userID, err := svc.Verify(raw)
		if userID != 0 {
			t.Fatalf("%s: expected zero user id, got %d", name, userID)
		}
		if !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("%s: expected collapsed unauthorized error, got %v", name, err)
		}
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", "issuer", time.Minute*5, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating token service: %v", err)
	}

	access, err := svc.Refresh(9)
	if err != nil {
		t.Fatalf("unexpected error refreshing token: %v", err)
	}
	if !strings.HasPrefix(access, SchemePrefix) {
		t.Fatalf("expected refreshed token with scheme prefix, got %q", access)
	}
	userID, err := svc.Verify(access)
	if err != nil {
		t.Fatalf("unexpected error verifying refreshed token: %v", err)
	}
	if userID != 9 {
		t.Fatalf("expected user id 9, got %d", userID)
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("   ", "", time.Hour, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
