package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"chatgate/internal/middleware"
	"chatgate/internal/repository"
	"chatgate/internal/service"
)

// AdminHandler handles the master-only approval and oversight endpoints
type AdminHandler struct {
	approvalSvc    *service.ApprovalService
	interactionSvc *service.InteractionService
	auditSvc       *service.AuditService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	approvalSvc *service.ApprovalService,
	interactionSvc *service.InteractionService,
	auditSvc *service.AuditService,
) *AdminHandler {
	return &AdminHandler{
		approvalSvc:    approvalSvc,
		interactionSvc: interactionSvc,
		auditSvc:       auditSvc,
	}
}

// DecideRequest represents an approval decision
type DecideRequest struct {
	AccountID      uint   `json:"account_id" validate:"required"`
	ApprovalStatus string `json:"approval_status" validate:"required"`
}

// ListAccounts returns all accounts with their role entries
// @Summary List accounts
// @Description List all accounts together with role and approval status
// @Tags Admin
// @Produce json
// @Success 200 {array} models.AccountWithRole "Accounts"
// @Failure 403 {object} map[string]string "Master capability required"
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.approvalSvc.ListAccounts()
	if err != nil {
		slog.Error("Failed to list accounts", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	respondWithJSON(w, http.StatusOK, accounts)
}

// ListPending returns all accounts awaiting a decision
// @Summary List pending accounts
// @Tags Admin
// @Produce json
// @Success 200 {array} models.AccountWithRole "Pending accounts"
// @Failure 403 {object} map[string]string "Master capability required"
// @Security BearerAuth
// @Router /admin/accounts/pending [get]
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.approvalSvc.ListPending()
	if err != nil {
		slog.Error("Failed to list pending accounts", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list pending accounts")
		return
	}

	respondWithJSON(w, http.StatusOK, accounts)
}

// Decide sets the approval status of a registered account
// @Summary Decide on an account
// @Description Approve, revert or reset a registered account's approval status
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body DecideRequest true "Decision"
// @Success 200 {object} map[string]string "Decision applied"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /admin/accounts/decide [post]
func (h *AdminHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if req.AccountID == 0 || req.ApprovalStatus == "" {
		respondWithError(w, http.StatusBadRequest, "Account ID and approval status are required")
		return
	}

	if err := h.approvalSvc.Decide(middleware.IsMaster(r), req.AccountID, req.ApprovalStatus); err != nil {
		switch {
		case errors.Is(err, service.ErrMasterRequired):
			respondWithError(w, http.StatusForbidden, "Master capability required")
		case errors.Is(err, service.ErrInvalidApprovalStatus):
			respondWithError(w, http.StatusBadRequest, "Approval status must be pending, approved or reverted")
		case errors.Is(err, repository.ErrAccountNotFound):
			respondWithError(w, http.StatusNotFound, ErrMsgAccountNotFound)
		default:
			slog.Error("Failed to apply decision", "account_id", req.AccountID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to apply decision")
		}
		return
	}

	slog.Info("Approval decision applied", "account_id", req.AccountID, "approval_status", req.ApprovalStatus)
	if username, ok := middleware.GetUsername(r); ok {
		h.auditSvc.Log(nil, &username, AuditActionApprovalDecision, "accounts",
			"Account "+strconv.FormatUint(uint64(req.AccountID), 10)+" set to "+req.ApprovalStatus,
			getIP(r), r.UserAgent())
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Approval status updated",
	})
}

// ListInteractions returns the full interaction ledger
// @Summary List all interactions
// @Description List every interaction request, newest first
// @Tags Admin
// @Produce json
// @Success 200 {array} models.InteractionRequest "Interactions"
// @Failure 403 {object} map[string]string "Master capability required"
// @Security BearerAuth
// @Router /admin/interactions [get]
func (h *AdminHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.interactionSvc.List()
	if err != nil {
		slog.Error("Failed to list interactions", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list interactions")
		return
	}

	respondWithJSON(w, http.StatusOK, interactions)
}
