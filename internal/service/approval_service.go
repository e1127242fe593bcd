package service

import (
	"errors"
	"fmt"

	"chatgate/internal/models"
	"chatgate/internal/repository"
)

var (
	ErrInvalidApprovalStatus = errors.New("invalid approval status")
	ErrMasterRequired        = errors.New("master capability required")
)

// ApprovalService handles the admin approval workflow
type ApprovalService struct {
	roleRepo *repository.RoleRepository
}

// NewApprovalService creates a new approval service
func NewApprovalService(roleRepo *repository.RoleRepository) *ApprovalService {
	return &ApprovalService{roleRepo: roleRepo}
}

// Decide sets the approval status of a registered account. Any of the
// three statuses can be set from any current status, and setting the
// status an account already has succeeds without effect. The caller's
// master capability is checked here again, independent of the route
// guard.
func (s *ApprovalService) Decide(master bool, accountID uint, status string) error {
	if !master {
		return ErrMasterRequired
	}

	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusReverted:
	default:
		return ErrInvalidApprovalStatus
	}

	if err := s.roleRepo.SetApprovalStatus(accountID, status); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return repository.ErrAccountNotFound
		}
		return fmt.Errorf("failed to set approval status: %w", err)
	}

	return nil
}

// ListPending returns all accounts awaiting a decision
func (s *ApprovalService) ListPending() ([]models.AccountWithRole, error) {
	accounts, err := s.roleRepo.ListPending()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts returns all accounts with their role entries
func (s *ApprovalService) ListAccounts() ([]models.AccountWithRole, error) {
	accounts, err := s.roleRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
