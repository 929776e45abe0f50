package auth

import (
	"testing"
	"time"

	"wellness-platform/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "wellness-platform",
		JWTAudience:     "wellness-api",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := testManager(t)

	now := time.Unix(1700000000, 0).UTC()
	pair, err := m.IssuePair(now, "user-1", "practice-1", "nutritionist")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.WorkspaceID != "practice-1" || claims.Role != "nutritionist" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	p, err := m.IssuePair(time.Now(), "u", "w", "client")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(p.RefreshToken, TokenTypeAccess, time.Now()); err == nil {
		t.Fatalf("expected token_type mismatch")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager(t)

	now := time.Unix(1700000000, 0).UTC()
	pair, err := m.IssuePair(now, "user-1", "practice-1", "nutritionist")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// beyond the 15m TTL plus the 30s leeway
	if _, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(20*time.Minute)); err == nil {
		t.Fatalf("expected expiry rejection")
	}
}

func TestVerifyChecksIssuerAndAudience(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	// token minted by a manager with a different issuer/audience but the
	// same secret must not verify
	other, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "someone-else",
		JWTAudience:     "other-api",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	pair, err := other.IssuePair(now, "user-1", "practice-1", "nutritionist")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m := testManager(t)
	if _, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(time.Minute)); err == nil {
		t.Fatalf("expected issuer/audience rejection")
	}
}
