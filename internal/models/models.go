package models

import (
	"time"
)

// Role values carried by a role ledger entry.
const (
	RoleRegistered = "registered"
	RoleApproved   = "approved"
	RoleMaster     = "master"
)

// Approval status values for a role ledger entry. StatusNone is never
// stored; it marks the absence of a role entry in access decisions.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusReverted = "reverted"
	StatusNone     = "none"
)

// Account represents a registered identity
type Account struct {
	ID           uint      `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RoleEntry is the authorization record governing an account's access
// to the downstream chat service. Exactly one exists per account; it is
// created together with the account and mutated only by approval
// decisions.
type RoleEntry struct {
	ID             uint      `json:"id" db:"id"`
	AccountID      uint      `json:"account_id" db:"account_id"`
	Role           string    `json:"role" db:"role"`
	ApprovalStatus string    `json:"approval_status" db:"approval_status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// AccountWithRole joins an account with its role ledger entry for
// administrator views.
type AccountWithRole struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status"`
	CreatedAt      time.Time `json:"created_at"`
}

// InteractionRequest is one logged exchange between a user and the
// downstream chat service. The automated reply, operator reply and
// feedback are independently settable; none of them gates another.
type InteractionRequest struct {
	ID                  uint      `json:"id" db:"id"`
	AccountID           uint      `json:"account_id" db:"account_id"`
	Username            string    `json:"username" db:"username"`
	Question            string    `json:"question" db:"question"`
	AutomatedReply      string    `json:"automated_reply" db:"automated_reply"`
	OperatorReply       *string   `json:"operator_reply,omitempty" db:"operator_reply"`
	Feedback            *string   `json:"feedback,omitempty" db:"feedback"`
	EscalationRequested bool      `json:"escalation_requested" db:"escalation_requested"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID        uint      `json:"id" db:"id"`
	AccountID *uint     `json:"account_id,omitempty" db:"account_id"`
	Username  *string   `json:"username,omitempty" db:"username"`
	Action    string    `json:"action" db:"action"`
	Resource  string    `json:"resource" db:"resource"`
	Details   string    `json:"details,omitempty" db:"details"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
