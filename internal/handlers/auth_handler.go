package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"chatgate/internal/middleware"
	"chatgate/internal/repository"
	"chatgate/internal/service"
	"chatgate/pkg/validator"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService *service.AuthService
	auditSvc    *service.AuditService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, auditSvc *service.AuditService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auditSvc:    auditSvc,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles account registration
// @Summary Register a new account
// @Description Create a new account with a pending approval status
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{} "Registration successful"
// @Failure 400 {object} map[string]string "Invalid request or username taken"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			respondWithError(w, http.StatusBadRequest, "Username already taken")
			return
		}
		slog.Error("Registration failed", "username", req.Username, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	slog.Info("Account registered", "account_id", account.ID, "username", account.Username)
	h.auditSvc.Log(&account.ID, &account.Username, AuditActionRegister, "accounts", "Account registered", getIP(r), r.UserAgent())

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. An administrator has to approve your access.",
		"account": account,
	})
}

// Login handles account login
// @Summary Log in
// @Description Verify credentials and issue an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login details"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, account, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, ErrMsgInvalidCredentials)
			return
		}
		slog.Error("Login failed", "username", req.Username, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("Account logged in", "account_id", account.ID, "username", account.Username)
	h.auditSvc.Log(&account.ID, &account.Username, AuditActionLogin, "accounts", "Account logged in", getIP(r), r.UserAgent())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"account": account,
	})
}

// MasterLogin handles master login with the configured credential pair
// @Summary Log in as master
// @Description Verify the out-of-band master credentials and issue a master token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Master login details"
// @Success 200 {object} map[string]string "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/admin/login [post]
func (h *AuthHandler) MasterLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.LoginMaster(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.auditSvc.Log(nil, nil, AuditActionMasterLogin, "accounts", "Master login rejected for "+req.Username, getIP(r), r.UserAgent())
			respondWithError(w, http.StatusUnauthorized, ErrMsgInvalidCredentials)
			return
		}
		slog.Error("Master login failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("Master logged in", "username", req.Username)
	h.auditSvc.Log(nil, &req.Username, AuditActionMasterLogin, "accounts", "Master logged in", getIP(r), r.UserAgent())

	respondWithJSON(w, http.StatusOK, map[string]string{
		"token": token,
	})
}

// requireAccountID pulls the authenticated account ID out of the
// request context. Master tokens have no account ID and are rejected.
func requireAccountID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok || accountID == 0 {
		respondWithError(w, http.StatusUnauthorized, ErrMsgNotAuthenticated)
		return 0, false
	}
	return accountID, true
}
