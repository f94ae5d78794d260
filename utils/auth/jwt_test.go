package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "placement-api-test",
	})
}

func TestAccessTokenTTL(t *testing.T) {
	m := newTestManager()

	if got := m.AccessTokenTTL(); got != time.Hour {
		t.Errorf("AccessTokenTTL() = %v, want %v", got, time.Hour)
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := newTestManager()

	token, jti, err := m.GenerateAccessToken(7, "student@campus.edu", "student", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if jti == "" {
		t.Error("expected a non-empty JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "student@campus.edu" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "student" {
		t.Errorf("Role = %q, want student", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("TokenVersion = %d, want 3", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims.ID = %q, want JTI %q", claims.ID, jti)
	}
	if claims.Issuer != "placement-api-test" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := newTestManager()

	token, _, err := m.GenerateRefreshToken(1, "a@b.c", "company", 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager(JWTConfig{
		Secret:        "a-different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: time.Hour,
		Issuer:        "placement-api-test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.c", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        -time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "placement-api-test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.c", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() with expired token error = %v, want ErrExpiredToken", err)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()

	refresh, _, err := m.GenerateRefreshToken(9, "x@y.z", "student", 2)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	access, _, err := m.RefreshAccessToken(refresh, 2)
	if err != nil {
		t.Fatalf("RefreshAccessToken() error = %v", err)
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.UserID != 9 {
		t.Errorf("UserID = %d, want 9", claims.UserID)
	}

	// An access token must not be usable as a refresh token
	if _, _, err := m.RefreshAccessToken(access, 2); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("RefreshAccessToken() with access token error = %v, want ErrInvalidToken", err)
	}
}

func TestGetTokenExpiryAndJTI(t *testing.T) {
	m := newTestManager()

	token, jti, err := m.GenerateAccessToken(1, "a@b.c", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	expiry, err := m.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry() error = %v", err)
	}
	if time.Until(expiry) > time.Hour || time.Until(expiry) < 55*time.Minute {
		t.Errorf("expiry %v not within expected window", expiry)
	}

	gotJTI, err := m.GetJTI(token)
	if err != nil {
		t.Fatalf("GetJTI() error = %v", err)
	}
	if gotJTI != jti {
		t.Errorf("GetJTI() = %q, want %q", gotJTI, jti)
	}
}
