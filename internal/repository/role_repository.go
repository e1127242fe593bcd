package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatgate/internal/models"
)

var ErrRoleNotFound = errors.New("role entry not found")

// RoleRepository handles role ledger database operations
type RoleRepository struct {
	db *sql.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByAccountID retrieves the role entry for an account
func (r *RoleRepository) GetByAccountID(accountID uint) (*models.RoleEntry, error) {
	query := `
		SELECT id, account_id, role, approval_status, created_at, updated_at
		FROM roles
		WHERE account_id = $1
	`

	entry := &models.RoleEntry{}
	err := r.db.QueryRow(query, accountID).Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Role,
		&entry.ApprovalStatus,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role entry: %w", err)
	}

	return entry, nil
}

// SetApprovalStatus updates the approval status of a registered
// account's role entry. The role filter keeps the decision confined to
// ordinary registered accounts; when no row matches, the account either
// does not exist or is not subject to approval, and ErrAccountNotFound
// is returned in both cases. Repeating a decision with the same status
// still matches the row and succeeds.
func (r *RoleRepository) SetApprovalStatus(accountID uint, status string) error {
	query := `
		UPDATE roles
		SET approval_status = $1, updated_at = $2
		WHERE account_id = $3 AND role = $4
	`

	result, err := r.db.Exec(query, status, time.Now(), accountID, models.RoleRegistered)
	if err != nil {
		return fmt.Errorf("failed to update approval status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// ListPending returns all accounts whose approval is still pending,
// newest first
func (r *RoleRepository) ListPending() ([]models.AccountWithRole, error) {
	query := `
		SELECT a.id, a.username, r.role, r.approval_status, a.created_at
		FROM accounts a
		JOIN roles r ON r.account_id = a.id
		WHERE r.approval_status = $1
		ORDER BY a.created_at DESC, a.id DESC
	`

	return r.queryAccountsWithRole(query, models.StatusPending)
}

// ListAll returns all accounts with their role entries, newest first
func (r *RoleRepository) ListAll() ([]models.AccountWithRole, error) {
	query := `
		SELECT a.id, a.username, r.role, r.approval_status, a.created_at
		FROM accounts a
		JOIN roles r ON r.account_id = a.id
		ORDER BY a.created_at DESC, a.id DESC
	`

	return r.queryAccountsWithRole(query)
}

func (r *RoleRepository) queryAccountsWithRole(query string, args ...interface{}) ([]models.AccountWithRole, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}()

	var accounts []models.AccountWithRole
	for rows.Next() {
		var account models.AccountWithRole
		if err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.Role,
			&account.ApprovalStatus,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
