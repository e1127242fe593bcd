package service

import (
	"errors"
	"fmt"

	"chatgate/internal/models"
	"chatgate/internal/repository"
)

// AccessService decides whether an account may reach the chat service
type AccessService struct {
	roleRepo *repository.RoleRepository
}

// NewAccessService creates a new access service
func NewAccessService(roleRepo *repository.RoleRepository) *AccessService {
	return &AccessService{roleRepo: roleRepo}
}

// AccessDecision is the result of an access evaluation
type AccessDecision struct {
	Granted bool   `json:"granted"`
	Status  string `json:"status"`
}

// Evaluate returns whether the account's role entry currently grants
// chat access. Access is granted exactly when the approval status is
// approved; pending and reverted both deny. An account without a role
// entry is denied rather than treated as an error, and reported with
// StatusNone so callers can tell it apart from a real pending entry.
func (s *AccessService) Evaluate(accountID uint) (*AccessDecision, error) {
	entry, err := s.roleRepo.GetByAccountID(accountID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return &AccessDecision{Granted: false, Status: models.StatusNone}, nil
		}
		return nil, fmt.Errorf("failed to evaluate access: %w", err)
	}

	return &AccessDecision{
		Granted: entry.ApprovalStatus == models.StatusApproved,
		Status:  entry.ApprovalStatus,
	}, nil
}
