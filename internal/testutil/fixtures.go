package testutil

import (
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"chatgate/internal/models"
)

// TestPassword is the plaintext password of all fixture accounts
const TestPassword = "testpassword123"

// Fixtures holds test data
type Fixtures struct {
	DB              *sql.DB
	PendingAccount  *models.Account
	ApprovedAccount *models.Account
	RevertedAccount *models.Account
}

// SetupFixtures creates one account per approval status
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()

	return &Fixtures{
		DB:              db,
		PendingAccount:  CreateAccount(t, db, "pending-user", models.StatusPending),
		ApprovedAccount: CreateAccount(t, db, "approved-user", models.StatusApproved),
		RevertedAccount: CreateAccount(t, db, "reverted-user", models.StatusReverted),
	}
}

// CreateAccount inserts an account with a registered role entry in the
// given approval status
func CreateAccount(t *testing.T, db *sql.DB, username, approvalStatus string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: string(hash),
	}

	err = db.QueryRow(`
		INSERT INTO accounts (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, account.Username, account.PasswordHash).Scan(
		&account.ID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO roles (account_id, role, approval_status)
		VALUES ($1, $2, $3)
	`, account.ID, models.RoleRegistered, approvalStatus)
	if err != nil {
		t.Fatalf("Failed to create role entry: %v", err)
	}

	return account
}

// CreateInteraction inserts an interaction request for an account
func CreateInteraction(t *testing.T, db *sql.DB, account *models.Account, question, automatedReply string) *models.InteractionRequest {
	t.Helper()

	req := &models.InteractionRequest{
		AccountID:      account.ID,
		Username:       account.Username,
		Question:       question,
		AutomatedReply: automatedReply,
	}

	err := db.QueryRow(`
		INSERT INTO interaction_requests (account_id, username, question, automated_reply)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, req.AccountID, req.Username, req.Question, req.AutomatedReply).Scan(
		&req.ID, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to create interaction request: %v", err)
	}

	return req
}
