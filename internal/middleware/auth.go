package middleware

import (
	"context"
	"net/http"
	"strings"

	"chatgate/internal/auth"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	UsernameKey  contextKey = "username"
	MasterKey    contextKey = "master"
)

// AuthMiddleware validates JWT tokens
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the JWT token and adds the caller's identity
// to the request context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, MasterKey, claims.Master)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireMaster rejects callers whose token does not carry the master
// capability. Must run after Authenticate.
func (m *AuthMiddleware) RequireMaster(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsMaster(r) {
			respondWithError(w, http.StatusForbidden, "Master capability required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetAccountID retrieves the account ID from the request context
func GetAccountID(r *http.Request) (uint, bool) {
	accountID, ok := r.Context().Value(AccountIDKey).(uint)
	return accountID, ok
}

// GetUsername retrieves the username from the request context
func GetUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(UsernameKey).(string)
	return username, ok
}

// IsMaster reports whether the request carries the master capability
func IsMaster(r *http.Request) bool {
	master, ok := r.Context().Value(MasterKey).(bool)
	return ok && master
}

// Helper function to respond with JSON error
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
