package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"chatgate/internal/service"
)

// AuditHandler exposes the audit log to master callers
type AuditHandler struct {
	auditSvc *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditSvc *service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// List returns audit log entries
// @Summary List audit logs
// @Description List audit log entries, newest first
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum number of entries" default(50)
// @Param offset query int false "Number of entries to skip" default(0)
// @Success 200 {array} models.AuditLog "Audit logs"
// @Failure 403 {object} map[string]string "Master capability required"
// @Security BearerAuth
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.auditSvc.List(limit, offset)
	if err != nil {
		slog.Error("Failed to list audit logs", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list audit logs")
		return
	}

	respondWithJSON(w, http.StatusOK, logs)
}
