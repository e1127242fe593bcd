package securestore

import "testing"

func TestPassthroughWhenDisabled(t *testing.T) {
	store := New(nil)

	if store.Enabled() {
		t.Error("Store without a Vault client should not report enabled")
	}

	sealed, err := store.Seal("hello")
	if err != nil {
		t.Fatalf("Failed to seal value: %v", err)
	}
	if sealed != "hello" {
		t.Errorf("Expected passthrough seal, got %q", sealed)
	}

	opened, err := store.Open(sealed)
	if err != nil {
		t.Fatalf("Failed to open value: %v", err)
	}
	if opened != "hello" {
		t.Errorf("Expected passthrough open, got %q", opened)
	}
}

func TestOpenOptional(t *testing.T) {
	store := New(nil)

	opened, err := store.OpenOptional(nil)
	if err != nil {
		t.Fatalf("Failed to open nil value: %v", err)
	}
	if opened != nil {
		t.Error("Expected nil for nil input")
	}

	value := "feedback"
	opened, err = store.OpenOptional(&value)
	if err != nil {
		t.Fatalf("Failed to open value: %v", err)
	}
	if opened == nil || *opened != "feedback" {
		t.Errorf("Expected feedback, got %v", opened)
	}
}
