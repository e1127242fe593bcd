package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatgate/internal/handlers"
	"chatgate/internal/middleware"
	"chatgate/internal/models"
	"chatgate/internal/repository"
	"chatgate/internal/securestore"
	"chatgate/internal/service"
	"chatgate/internal/testutil"
)

// TestApprovalLifecycle verifies that chat access follows the approval
// status through the whole pending, approved, reverted cycle
func TestApprovalLifecycle(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, containers.DB)

	roleRepo := repository.NewRoleRepository(containers.DB)
	accessSvc := service.NewAccessService(roleRepo)
	approvalSvc := service.NewApprovalService(roleRepo)

	// A fresh account starts pending and denied
	decision, err := accessSvc.Evaluate(fixtures.PendingAccount.ID)
	if err != nil {
		t.Fatalf("Failed to evaluate access: %v", err)
	}
	if decision.Granted {
		t.Error("Pending account should not have access")
	}
	if decision.Status != models.StatusPending {
		t.Errorf("Expected status pending, got %s", decision.Status)
	}

	// Approving grants access
	if err := approvalSvc.Decide(true, fixtures.PendingAccount.ID, models.StatusApproved); err != nil {
		t.Fatalf("Failed to approve account: %v", err)
	}
	decision, err = accessSvc.Evaluate(fixtures.PendingAccount.ID)
	if err != nil {
		t.Fatalf("Failed to evaluate access: %v", err)
	}
	if !decision.Granted {
		t.Error("Approved account should have access")
	}

	// Approving again is idempotent
	if err := approvalSvc.Decide(true, fixtures.PendingAccount.ID, models.StatusApproved); err != nil {
		t.Fatalf("Repeated approval should succeed: %v", err)
	}

	// Reverting withdraws access
	if err := approvalSvc.Decide(true, fixtures.PendingAccount.ID, models.StatusReverted); err != nil {
		t.Fatalf("Failed to revert account: %v", err)
	}
	decision, err = accessSvc.Evaluate(fixtures.PendingAccount.ID)
	if err != nil {
		t.Fatalf("Failed to evaluate access: %v", err)
	}
	if decision.Granted {
		t.Error("Reverted account should not have access")
	}
	if decision.Status != models.StatusReverted {
		t.Errorf("Expected status reverted, got %s", decision.Status)
	}

	// A reverted account can be approved again
	if err := approvalSvc.Decide(true, fixtures.PendingAccount.ID, models.StatusApproved); err != nil {
		t.Fatalf("Failed to re-approve reverted account: %v", err)
	}
	decision, _ = accessSvc.Evaluate(fixtures.PendingAccount.ID)
	if !decision.Granted {
		t.Error("Re-approved account should have access")
	}
}

// TestDecideUnknownAccount verifies that deciding on a missing account
// reports not found
func TestDecideUnknownAccount(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	roleRepo := repository.NewRoleRepository(containers.DB)
	approvalSvc := service.NewApprovalService(roleRepo)

	err := approvalSvc.Decide(true, 99999, models.StatusApproved)
	if !errors.Is(err, repository.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}

	if err := approvalSvc.Decide(true, 1, "destroyed"); !errors.Is(err, service.ErrInvalidApprovalStatus) {
		t.Errorf("Expected ErrInvalidApprovalStatus, got %v", err)
	}
}

// TestDecideRequiresMaster verifies that the approval workflow itself
// rejects callers without the master capability, independent of any
// route guard
func TestDecideRequiresMaster(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, containers.DB)

	roleRepo := repository.NewRoleRepository(containers.DB)
	approvalSvc := service.NewApprovalService(roleRepo)

	err := approvalSvc.Decide(false, fixtures.PendingAccount.ID, models.StatusApproved)
	if !errors.Is(err, service.ErrMasterRequired) {
		t.Fatalf("Expected ErrMasterRequired, got %v", err)
	}

	// The rejected call must not have touched the ledger
	entry, err := roleRepo.GetByAccountID(fixtures.PendingAccount.ID)
	if err != nil {
		t.Fatalf("Failed to get role entry: %v", err)
	}
	if entry.ApprovalStatus != models.StatusPending {
		t.Errorf("Expected status pending after rejected decision, got %s", entry.ApprovalStatus)
	}
}

// TestEvaluateWithoutRoleEntry verifies that an account with no role
// ledger entry is denied without error and reported distinctly from a
// pending entry
func TestEvaluateWithoutRoleEntry(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	roleRepo := repository.NewRoleRepository(containers.DB)
	accessSvc := service.NewAccessService(roleRepo)

	// Account row without a role entry
	var accountID uint
	err := containers.DB.QueryRow(`
		INSERT INTO accounts (username, password_hash)
		VALUES ('orphan-user', 'x')
		RETURNING id
	`).Scan(&accountID)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	decision, err := accessSvc.Evaluate(accountID)
	if err != nil {
		t.Fatalf("Evaluate should not fail for a missing role entry: %v", err)
	}
	if decision.Granted {
		t.Error("Account without a role entry should not have access")
	}
	if decision.Status != models.StatusNone {
		t.Errorf("Expected status none, got %q", decision.Status)
	}

	// Nonexistent account id behaves the same way
	decision, err = accessSvc.Evaluate(99999)
	if err != nil {
		t.Fatalf("Evaluate should not fail for an unknown account: %v", err)
	}
	if decision.Granted || decision.Status != models.StatusNone {
		t.Errorf("Expected denied/none for unknown account, got %+v", decision)
	}
}

// TestRegistrationIsAtomic verifies that registering creates the
// account and its pending role entry together, and that duplicate
// usernames are rejected without leaving partial rows
func TestRegistrationIsAtomic(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	accountRepo := repository.NewAccountRepository(containers.DB)

	account := &models.Account{Username: "newcomer", PasswordHash: "x"}
	if err := accountRepo.CreateWithRole(account); err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	roleRepo := repository.NewRoleRepository(containers.DB)
	entry, err := roleRepo.GetByAccountID(account.ID)
	if err != nil {
		t.Fatalf("Failed to get role entry: %v", err)
	}
	if entry.Role != models.RoleRegistered || entry.ApprovalStatus != models.StatusPending {
		t.Errorf("Expected registered/pending entry, got %s/%s", entry.Role, entry.ApprovalStatus)
	}

	// Duplicate username
	dup := &models.Account{Username: "newcomer", PasswordHash: "y"}
	if err := accountRepo.CreateWithRole(dup); !errors.Is(err, repository.ErrAccountExists) {
		t.Errorf("Expected ErrAccountExists, got %v", err)
	}

	var count int
	if err := containers.DB.QueryRow(`SELECT COUNT(*) FROM accounts WHERE username = 'newcomer'`).Scan(&count); err != nil {
		t.Fatalf("Failed to count accounts: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one account row, got %d", count)
	}
}

// TestInteractionFieldFlows verifies the three annotation sub-flows and
// the escalation flag
func TestInteractionFieldFlows(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, containers.DB)

	interactionRepo := repository.NewInteractionRepository(containers.DB)
	interactionSvc := service.NewInteractionService(interactionRepo, securestore.New(nil))

	req, err := interactionSvc.Log(fixtures.ApprovedAccount.ID, fixtures.ApprovedAccount.Username, "What is Go?", "A language.")
	if err != nil {
		t.Fatalf("Failed to log interaction: %v", err)
	}

	// Missing fields are rejected before anything is written
	if _, err := interactionSvc.Log(fixtures.ApprovedAccount.ID, fixtures.ApprovedAccount.Username, "", "reply"); !errors.Is(err, service.ErrMissingField) {
		t.Errorf("Expected ErrMissingField for empty question, got %v", err)
	}
	if _, err := interactionSvc.Log(fixtures.ApprovedAccount.ID, fixtures.ApprovedAccount.Username, "question", " "); !errors.Is(err, service.ErrMissingField) {
		t.Errorf("Expected ErrMissingField for blank reply, got %v", err)
	}

	// Each field is settable independently
	if err := interactionSvc.ReviseAutomatedReply(req.ID, "A programming language."); err != nil {
		t.Fatalf("Failed to revise automated reply: %v", err)
	}
	if err := interactionSvc.SetOperatorReply(req.ID, "See golang.org"); err != nil {
		t.Fatalf("Failed to set operator reply: %v", err)
	}
	if err := interactionSvc.SetFeedback(req.ID, "helpful"); err != nil {
		t.Fatalf("Failed to set feedback: %v", err)
	}
	if err := interactionSvc.RequestEscalation(req.ID); err != nil {
		t.Fatalf("Failed to request escalation: %v", err)
	}

	// Repeating an update with the same value succeeds
	if err := interactionSvc.SetFeedback(req.ID, "helpful"); err != nil {
		t.Errorf("Repeated feedback update should succeed: %v", err)
	}
	if err := interactionSvc.RequestEscalation(req.ID); err != nil {
		t.Errorf("Repeated escalation should succeed: %v", err)
	}

	// Updates against a missing interaction report not found
	if err := interactionSvc.SetOperatorReply(99999, "reply"); !errors.Is(err, repository.ErrInteractionNotFound) {
		t.Errorf("Expected ErrInteractionNotFound, got %v", err)
	}

	stored, err := interactionRepo.GetByID(req.ID)
	if err != nil {
		t.Fatalf("Failed to get interaction: %v", err)
	}
	if stored.AutomatedReply != "A programming language." {
		t.Errorf("Unexpected automated reply: %q", stored.AutomatedReply)
	}
	if stored.OperatorReply == nil || *stored.OperatorReply != "See golang.org" {
		t.Errorf("Unexpected operator reply: %v", stored.OperatorReply)
	}
	if stored.Feedback == nil || *stored.Feedback != "helpful" {
		t.Errorf("Unexpected feedback: %v", stored.Feedback)
	}
	if !stored.EscalationRequested {
		t.Error("Expected escalation to be requested")
	}
}

// TestInteractionListOrder verifies that listings are newest first
func TestInteractionListOrder(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, containers.DB)

	testutil.CreateInteraction(t, containers.DB, fixtures.ApprovedAccount, "first question", "first reply")
	testutil.CreateInteraction(t, containers.DB, fixtures.ApprovedAccount, "second question", "second reply")
	testutil.CreateInteraction(t, containers.DB, fixtures.PendingAccount, "third question", "third reply")

	interactionRepo := repository.NewInteractionRepository(containers.DB)
	interactionSvc := service.NewInteractionService(interactionRepo, securestore.New(nil))

	all, err := interactionSvc.List()
	if err != nil {
		t.Fatalf("Failed to list interactions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 interactions, got %d", len(all))
	}
	if all[0].Question != "third question" || all[2].Question != "first question" {
		t.Errorf("Expected newest first ordering, got %q ... %q", all[0].Question, all[2].Question)
	}

	mine, err := interactionSvc.ListByAccount(fixtures.ApprovedAccount.ID)
	if err != nil {
		t.Fatalf("Failed to list own interactions: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("Expected 2 interactions, got %d", len(mine))
	}
	if mine[0].Question != "second question" {
		t.Errorf("Expected newest first ordering, got %q", mine[0].Question)
	}
}

// TestMasterGuard verifies that admin endpoints reject account tokens
// and accept master tokens
func TestMasterGuard(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, containers.DB)
	authHelper := testutil.NewAuthHelper()

	roleRepo := repository.NewRoleRepository(containers.DB)
	auditRepo := repository.NewAuditRepository(containers.DB)
	interactionRepo := repository.NewInteractionRepository(containers.DB)

	approvalSvc := service.NewApprovalService(roleRepo)
	auditSvc := service.NewAuditService(auditRepo)
	interactionSvc := service.NewInteractionService(interactionRepo, securestore.New(nil))
	adminHandler := handlers.NewAdminHandler(approvalSvc, interactionSvc, auditSvc)

	authMw := middleware.NewAuthMiddleware(authHelper.Service)

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/admin/accounts", authMw.Authenticate(authMw.RequireMaster(http.HandlerFunc(adminHandler.ListAccounts))))
	mux.Handle("POST /api/v1/admin/accounts/decide", authMw.Authenticate(authMw.RequireMaster(http.HandlerFunc(adminHandler.Decide))))

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	resp := testutil.NewTestResponse()
	mux.ServeHTTP(resp, req)
	resp.AssertStatus(t, http.StatusUnauthorized)

	// Ordinary account token
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	authHelper.AddAuthHeader(t, req, fixtures.ApprovedAccount)
	resp = testutil.NewTestResponse()
	mux.ServeHTTP(resp, req)
	resp.AssertStatus(t, http.StatusForbidden)

	// Master token
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	authHelper.AddMasterAuthHeader(t, req)
	resp = testutil.NewTestResponse()
	mux.ServeHTTP(resp, req)
	resp.AssertStatus(t, http.StatusOK)

	var accounts []models.AccountWithRole
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		t.Fatalf("Failed to decode accounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Errorf("Expected 3 accounts, got %d", len(accounts))
	}

	// Master can decide
	body, _ := json.Marshal(handlers.DecideRequest{
		AccountID:      fixtures.PendingAccount.ID,
		ApprovalStatus: models.StatusApproved,
	})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/accounts/decide", bytes.NewReader(body))
	authHelper.AddMasterAuthHeader(t, req)
	resp = testutil.NewTestResponse()
	mux.ServeHTTP(resp, req)
	resp.AssertStatus(t, http.StatusOK)

	// Deciding on an unknown account reports not found
	body, _ = json.Marshal(handlers.DecideRequest{AccountID: 99999, ApprovalStatus: models.StatusApproved})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/accounts/decide", bytes.NewReader(body))
	authHelper.AddMasterAuthHeader(t, req)
	resp = testutil.NewTestResponse()
	mux.ServeHTTP(resp, req)
	resp.AssertStatus(t, http.StatusNotFound)
}
