package securestore_test

import (
	"strings"
	"testing"

	"chatgate/internal/config"
	"chatgate/internal/securestore"
	"chatgate/internal/testutil"
	"chatgate/internal/vault"
)

// TestVaultRoundTrip verifies sealing and opening against a real
// transit engine
func TestVaultRoundTrip(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	client, err := vault.NewClient(&config.VaultConfig{
		Address:      containers.VaultAddr,
		Token:        containers.VaultToken,
		TransitMount: "transit",
		KeyName:      "interactions",
		Enabled:      true,
	})
	if err != nil {
		t.Fatalf("Failed to create Vault client: %v", err)
	}

	store := securestore.New(client)
	if !store.Enabled() {
		t.Fatal("Store with a Vault client should report enabled")
	}

	sealed, err := store.Seal("What is the refund policy?")
	if err != nil {
		t.Fatalf("Failed to seal value: %v", err)
	}
	if !strings.HasPrefix(sealed, "vault:") {
		t.Errorf("Expected transit ciphertext, got %q", sealed)
	}
	if strings.Contains(sealed, "refund") {
		t.Error("Ciphertext should not contain the plaintext")
	}

	opened, err := store.Open(sealed)
	if err != nil {
		t.Fatalf("Failed to open value: %v", err)
	}
	if opened != "What is the refund policy?" {
		t.Errorf("Round trip mismatch: %q", opened)
	}

	// Values written before encryption was enabled pass through
	opened, err = store.Open("stored in plain")
	if err != nil {
		t.Fatalf("Failed to open plain value: %v", err)
	}
	if opened != "stored in plain" {
		t.Errorf("Expected passthrough for plain value, got %q", opened)
	}
}
