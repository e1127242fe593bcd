package middleware

import (
	"net/http"

	"chatgate/internal/service"
)

// AuditMiddleware records security-relevant actions in the audit log
type AuditMiddleware struct {
	auditSvc *service.AuditService
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(auditSvc *service.AuditService) *AuditMiddleware {
	return &AuditMiddleware{auditSvc: auditSvc}
}

// Log records an audit entry after the wrapped handler has run
func (m *AuditMiddleware) Log(action, resource, details string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			var accountID *uint
			if id, ok := GetAccountID(r); ok && id != 0 {
				accountID = &id
			}
			var username *string
			if name, ok := GetUsername(r); ok && name != "" {
				username = &name
			}

			m.auditSvc.Log(accountID, username, action, resource, details, getIP(r), r.UserAgent())
		})
	}
}
