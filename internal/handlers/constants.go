package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody   = "Invalid request body"
	ErrMsgInvalidCredentials   = "Invalid credentials"
	ErrMsgAccountNotFound      = "Account not found"
	ErrMsgInteractionNotFound  = "Interaction request not found"
	ErrMsgNotAuthenticated     = "Not authenticated"
	ErrMsgAccessDenied         = "Chatbot access not granted"
	ErrMsgInvalidInteractionID = "Invalid interaction ID"
)

// Audit action constants
const (
	AuditActionRegister         = "account.register"
	AuditActionLogin            = "account.login"
	AuditActionMasterLogin      = "account.master_login"
	AuditActionApprovalDecision = "approval.decide"
	AuditActionChat             = "chat.ask"
	AuditActionEscalation       = "interaction.escalate"
)
