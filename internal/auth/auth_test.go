package auth

import (
	"testing"
	"time"

	"chatgate/internal/config"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:     "test-secret",
		Expiration: 24 * time.Hour,
	}
}

func TestHashPassword(t *testing.T) {
	svc := NewService(testConfig())

	password := "testpassword123"
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	if hash == password {
		t.Error("Hash should not equal the original password")
	}
}

func TestVerifyPassword(t *testing.T) {
	svc := NewService(testConfig())

	password := "testpassword123"
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	// Test correct password
	err = svc.VerifyPassword(hash, password)
	if err != nil {
		t.Errorf("Should verify correct password, got error: %v", err)
	}

	// Test incorrect password
	err = svc.VerifyPassword(hash, "wrongpassword")
	if err == nil {
		t.Error("Should not verify incorrect password")
	}
}

func TestGenerateToken(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if token == "" {
		t.Error("Token should not be empty")
	}
}

func TestValidateToken(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.AccountID != 1 {
		t.Errorf("Expected account ID 1, got %d", claims.AccountID)
	}

	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username)
	}

	if claims.Master {
		t.Error("Account token should not carry the master capability")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := NewService(testConfig())

	_, err := svc.ValidateToken("not-a-token")
	if err == nil {
		t.Error("Should not validate a malformed token")
	}

	// Token from a different key pair must be rejected
	other := NewService(testConfig())
	token, err := other.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("Should not validate a token signed with a different key")
	}
}

func TestGenerateMasterToken(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.GenerateMasterToken("admin")
	if err != nil {
		t.Fatalf("Failed to generate master token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate master token: %v", err)
	}

	if !claims.Master {
		t.Error("Master token should carry the master capability")
	}

	if claims.AccountID != 0 {
		t.Errorf("Master token should have no account ID, got %d", claims.AccountID)
	}

	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %s", claims.Username)
	}
}

func TestGenerateRandomToken(t *testing.T) {
	token1, err := GenerateRandomToken(16)
	if err != nil {
		t.Fatalf("Failed to generate random token: %v", err)
	}

	token2, err := GenerateRandomToken(16)
	if err != nil {
		t.Fatalf("Failed to generate random token: %v", err)
	}

	if token1 == "" || token2 == "" {
		t.Error("Random tokens should not be empty")
	}

	if token1 == token2 {
		t.Error("Random tokens should not repeat")
	}
}
