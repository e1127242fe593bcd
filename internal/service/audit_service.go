package service

import (
	"fmt"

	"chatgate/internal/models"
	"chatgate/internal/repository"
)

// AuditService handles audit logging
type AuditService struct {
	auditRepo *repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log creates an audit log entry, ignoring errors so the main
// operation never fails on audit trouble
func (s *AuditService) Log(accountID *uint, username *string, action, resource, details, ip, userAgent string) {
	_ = s.auditRepo.Create(&models.AuditLog{
		AccountID: accountID,
		Username:  username,
		Action:    action,
		Resource:  resource,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// List returns audit log entries, newest first
func (s *AuditService) List(limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := s.auditRepo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
