package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatgate/internal/auth"
	"chatgate/internal/config"
	"chatgate/internal/models"
)

// AuthHelper issues tokens for tests using a throwaway key pair
type AuthHelper struct {
	Service *auth.Service
}

// NewAuthHelper creates a new auth helper
func NewAuthHelper() *AuthHelper {
	return &AuthHelper{
		Service: auth.NewService(&config.JWTConfig{
			Secret:     "test-secret",
			Expiration: time.Hour,
		}),
	}
}

// AddAuthHeader adds an account token to the request
func (h *AuthHelper) AddAuthHeader(t *testing.T, req *http.Request, account *models.Account) {
	t.Helper()

	token, err := h.Service.GenerateToken(account.ID, account.Username)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
}

// AddMasterAuthHeader adds a master token to the request
func (h *AuthHelper) AddMasterAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()

	token, err := h.Service.GenerateMasterToken("admin")
	if err != nil {
		t.Fatalf("Failed to generate master token: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
}

// TestResponse holds response data for assertions
type TestResponse struct {
	*httptest.ResponseRecorder
}

// NewTestResponse creates a new test response recorder
func NewTestResponse() *TestResponse {
	return &TestResponse{
		ResponseRecorder: httptest.NewRecorder(),
	}
}

// AssertStatus asserts the HTTP status code
func (r *TestResponse) AssertStatus(t *testing.T, expected int) {
	t.Helper()

	if r.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, r.Code, r.Body.String())
	}
}
