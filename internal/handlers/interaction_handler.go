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
	"chatgate/pkg/validator"
)

// InteractionHandler handles the interaction request ledger
type InteractionHandler struct {
	interactionSvc *service.InteractionService
	accessSvc      *service.AccessService
	auditSvc       *service.AuditService
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(
	interactionSvc *service.InteractionService,
	accessSvc *service.AccessService,
	auditSvc *service.AuditService,
) *InteractionHandler {
	return &InteractionHandler{
		interactionSvc: interactionSvc,
		accessSvc:      accessSvc,
		auditSvc:       auditSvc,
	}
}

// LogInteractionRequest represents a request to record an exchange
type LogInteractionRequest struct {
	Question       string `json:"question" validate:"required"`
	AutomatedReply string `json:"automated_reply" validate:"required"`
}

// ReplyRequest carries a single free text field for the reply sub-flows
type ReplyRequest struct {
	Value string `json:"value" validate:"required"`
}

// Log records an exchange in the ledger
// @Summary Record an interaction
// @Description Store a question and its automated reply
// @Tags Interactions
// @Accept json
// @Produce json
// @Param request body LogInteractionRequest true "Exchange"
// @Success 201 {object} models.InteractionRequest "Recorded interaction"
// @Failure 400 {object} map[string]string "Missing field"
// @Failure 403 {object} map[string]string "Access not granted"
// @Security BearerAuth
// @Router /interactions [post]
func (h *InteractionHandler) Log(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}
	username, _ := middleware.GetUsername(r)

	decision, err := h.accessSvc.Evaluate(accountID)
	if err != nil {
		slog.Error("Access evaluation failed", "account_id", accountID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to evaluate access")
		return
	}
	if !decision.Granted {
		respondWithError(w, http.StatusForbidden, ErrMsgAccessDenied)
		return
	}

	var req LogInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	interaction, err := h.interactionSvc.Log(accountID, username, req.Question, req.AutomatedReply)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) {
			respondWithError(w, http.StatusBadRequest, "Question and automated reply are required")
			return
		}
		slog.Error("Failed to log interaction", "account_id", accountID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to record interaction")
		return
	}

	respondWithJSON(w, http.StatusCreated, interaction)
}

// ListMine returns the caller's interaction requests
// @Summary List own interactions
// @Description List the caller's interaction requests, newest first
// @Tags Interactions
// @Produce json
// @Success 200 {array} models.InteractionRequest "Interactions"
// @Security BearerAuth
// @Router /interactions [get]
func (h *InteractionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	interactions, err := h.interactionSvc.ListByAccount(accountID)
	if err != nil {
		slog.Error("Failed to list interactions", "account_id", accountID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list interactions")
		return
	}

	respondWithJSON(w, http.StatusOK, interactions)
}

// ReviseAutomatedReply overwrites the automated reply of an interaction
// @Summary Revise an automated reply
// @Tags Interactions
// @Accept json
// @Produce json
// @Param id path int true "Interaction ID"
// @Param request body ReplyRequest true "New automated reply"
// @Success 200 {object} map[string]string "Updated"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /interactions/{id}/automated-reply [put]
func (h *InteractionHandler) ReviseAutomatedReply(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, h.interactionSvc.ReviseAutomatedReply, "Automated reply updated")
}

// SetOperatorReply sets the operator reply of an interaction
// @Summary Set an operator reply
// @Tags Interactions
// @Accept json
// @Produce json
// @Param id path int true "Interaction ID"
// @Param request body ReplyRequest true "Operator reply"
// @Success 200 {object} map[string]string "Updated"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /interactions/{id}/operator-reply [put]
func (h *InteractionHandler) SetOperatorReply(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, h.interactionSvc.SetOperatorReply, "Operator reply updated")
}

// SetFeedback records the requester's feedback on an interaction
// @Summary Set feedback
// @Tags Interactions
// @Accept json
// @Produce json
// @Param id path int true "Interaction ID"
// @Param request body ReplyRequest true "Feedback"
// @Success 200 {object} map[string]string "Updated"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /interactions/{id}/feedback [put]
func (h *InteractionHandler) SetFeedback(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, h.interactionSvc.SetFeedback, "Feedback updated")
}

// RequestEscalation marks an interaction as needing an operator
// @Summary Request escalation
// @Tags Interactions
// @Produce json
// @Param id path int true "Interaction ID"
// @Success 200 {object} map[string]string "Escalation requested"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /interactions/{id}/escalate [post]
func (h *InteractionHandler) RequestEscalation(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccountID(w, r); !ok {
		return
	}

	id, err := interactionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidInteractionID)
		return
	}

	if err := h.interactionSvc.RequestEscalation(id); err != nil {
		if errors.Is(err, repository.ErrInteractionNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgInteractionNotFound)
			return
		}
		slog.Error("Failed to request escalation", "interaction_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to request escalation")
		return
	}

	if username, ok := middleware.GetUsername(r); ok {
		accountID, _ := middleware.GetAccountID(r)
		h.auditSvc.Log(&accountID, &username, AuditActionEscalation, "interactions", "Escalation requested for interaction "+strconv.FormatUint(uint64(id), 10), getIP(r), r.UserAgent())
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Escalation requested"})
}

// updateField serves both account-held and master-held routes, so it
// only requires an authenticated identity, not an account id.
func (h *InteractionHandler) updateField(w http.ResponseWriter, r *http.Request, update func(uint, string) error, message string) {
	if _, ok := middleware.GetUsername(r); !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgNotAuthenticated)
		return
	}

	id, err := interactionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidInteractionID)
		return
	}

	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := update(id, req.Value); err != nil {
		switch {
		case errors.Is(err, repository.ErrInteractionNotFound):
			respondWithError(w, http.StatusNotFound, ErrMsgInteractionNotFound)
		case errors.Is(err, service.ErrMissingField):
			respondWithError(w, http.StatusBadRequest, "Value must not be empty")
		default:
			slog.Error("Failed to update interaction", "interaction_id", id, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update interaction")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func interactionID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
