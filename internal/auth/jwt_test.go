package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}

	token, err := m.GenerateClientToken("web-ui", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.ClientID != "web-ui" {
		t.Errorf("Expected client ID 'web-ui', got '%s'", claims.ClientID)
	}
	if claims.Role != RoleClient {
		t.Errorf("Expected role '%s', got '%s'", RoleClient, claims.Role)
	}
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a")
	verifier, _ := NewTokenManager("secret-b")

	token, err := issuer.GenerateClientToken("web-ui", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("Expected error for token signed with another secret")
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m, _ := NewTokenManager("test-secret")

	claims := &JWTClaims{
		ClientID: "web-ui",
		Role:     RoleClient,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	m, _ := NewTokenManager("test-secret")

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{Role: RoleClient}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("Expected error for unsigned token")
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	if _, err := NewTokenManager(""); err == nil {
		t.Error("Expected error for empty secret")
	}
}
