// Package securestore encrypts interaction free text before it reaches
// the database. When Vault is disabled the store passes values through
// unchanged, so callers never need to branch on the deployment mode.
package securestore

import (
	"fmt"
	"strings"

	"chatgate/internal/vault"
)

// Vault transit ciphertexts always start with this prefix, which lets
// the store recognize values written before encryption was enabled.
const ciphertextPrefix = "vault:"

// Store encrypts and decrypts free text fields
type Store struct {
	vault *vault.Client
}

// New creates a store backed by the given Vault client. A nil client
// yields a passthrough store.
func New(vaultClient *vault.Client) *Store {
	return &Store{vault: vaultClient}
}

// Enabled reports whether values are actually encrypted
func (s *Store) Enabled() bool {
	return s.vault != nil
}

// Seal encrypts a value for storage
func (s *Store) Seal(value string) (string, error) {
	if s.vault == nil || value == "" {
		return value, nil
	}

	ciphertext, err := s.vault.Encrypt([]byte(value))
	if err != nil {
		return "", fmt.Errorf("failed to seal value: %w", err)
	}

	return ciphertext, nil
}

// Open decrypts a stored value. Plain values written before encryption
// was enabled are returned as is.
func (s *Store) Open(value string) (string, error) {
	if s.vault == nil || value == "" {
		return value, nil
	}

	if !strings.HasPrefix(value, ciphertextPrefix) {
		return value, nil
	}

	plaintext, err := s.vault.Decrypt(value)
	if err != nil {
		return "", fmt.Errorf("failed to open value: %w", err)
	}

	return string(plaintext), nil
}

// OpenOptional decrypts a nullable stored value
func (s *Store) OpenOptional(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	opened, err := s.Open(*value)
	if err != nil {
		return nil, err
	}

	return &opened, nil
}
