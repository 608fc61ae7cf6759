package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	tok, err := NewAccessToken(secret, 42, "OWNER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() = %v", err)
	}
	if tok.Token == "" {
		t.Fatal("NewAccessToken() returned empty token")
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse signed token: %v (valid=%v)", err, parsed != nil && parsed.Valid)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub claim = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "OWNER" {
		t.Errorf("role claim = %v, want OWNER", claims["role"])
	}
}

func TestNewAccessTokenWrongSecretRejected(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 1, "CUSTOMER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() = %v", err)
	}
	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil && parsed.Valid {
		t.Error("token signed with secret-a validated under secret-b")
	}
}

func TestNewRefreshTokenUnique(t *testing.T) {
	a, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() = %v", err)
	}
	b, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() = %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens share the same raw value")
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96 hex chars", len(a.Raw))
	}
}

func TestHashRefreshRawStable(t *testing.T) {
	h1 := HashRefreshRaw("token-value")
	h2 := HashRefreshRaw("token-value")
	if h1 != h2 {
		t.Error("hash of the same token differs between calls")
	}
	if h1 == HashRefreshRaw("other-token") {
		t.Error("different tokens share a hash")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword() = %v", err)
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}
