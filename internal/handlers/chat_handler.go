package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"chatgate/internal/middleware"
	"chatgate/internal/service"
	"chatgate/pkg/validator"
)

// ChatHandler handles chat access checks and chat requests
type ChatHandler struct {
	accessSvc      *service.AccessService
	chatSvc        *service.ChatService
	interactionSvc *service.InteractionService
	auditSvc       *service.AuditService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	accessSvc *service.AccessService,
	chatSvc *service.ChatService,
	interactionSvc *service.InteractionService,
	auditSvc *service.AuditService,
) *ChatHandler {
	return &ChatHandler{
		accessSvc:      accessSvc,
		chatSvc:        chatSvc,
		interactionSvc: interactionSvc,
		auditSvc:       auditSvc,
	}
}

// ChatRequest represents a chat question
type ChatRequest struct {
	Question string `json:"question" validate:"required"`
}

// ChatResponse represents a chat answer
type ChatResponse struct {
	Reply               string `json:"reply"`
	DownstreamAvailable bool   `json:"downstream_available"`
	InteractionID       uint   `json:"interaction_id,omitempty"`
}

// Access reports whether the caller may use the chat
// @Summary Check chat access
// @Description Evaluate whether the account's approval status grants chat access
// @Tags Chat
// @Produce json
// @Success 200 {object} service.AccessDecision "Access decision"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Security BearerAuth
// @Router /chat/access [get]
func (h *ChatHandler) Access(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	decision, err := h.accessSvc.Evaluate(accountID)
	if err != nil {
		slog.Error("Access evaluation failed", "account_id", accountID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to evaluate access")
		return
	}

	respondWithJSON(w, http.StatusOK, decision)
}

// Chat forwards a question to the downstream chat service and records
// the exchange
// @Summary Ask the chat service
// @Description Forward a question downstream and log the interaction. Requires approved access.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Question"
// @Success 200 {object} ChatResponse "Reply"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 403 {object} map[string]string "Access not granted"
// @Security BearerAuth
// @Router /chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
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

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chatSvc.Complete(req.Question)
	if errors.Is(err, service.ErrDownstreamUnavailable) {
		// The requester still gets the fallback reply, but nothing is
		// recorded in the ledger for a failed exchange.
		respondWithJSON(w, http.StatusOK, ChatResponse{
			Reply:               reply,
			DownstreamAvailable: false,
		})
		return
	}
	if err != nil {
		slog.Error("Chat completion failed", "account_id", accountID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to process question")
		return
	}

	interaction, err := h.interactionSvc.Log(accountID, username, req.Question, reply)
	if err != nil {
		slog.Error("Failed to log interaction", "account_id", accountID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to record interaction")
		return
	}

	h.auditSvc.Log(&accountID, &username, AuditActionChat, "interactions", "Question answered", getIP(r), r.UserAgent())

	respondWithJSON(w, http.StatusOK, ChatResponse{
		Reply:               reply,
		DownstreamAvailable: true,
		InteractionID:       interaction.ID,
	})
}
