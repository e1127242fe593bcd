package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatgate/internal/models"
)

var ErrInteractionNotFound = errors.New("interaction request not found")

// InteractionRepository handles interaction request database operations
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Create inserts a new interaction request
func (r *InteractionRepository) Create(req *models.InteractionRequest) error {
	query := `
		INSERT INTO interaction_requests (account_id, username, question, automated_reply, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		req.AccountID,
		req.Username,
		req.Question,
		req.AutomatedReply,
		now,
		now,
	).Scan(&req.ID)

	if err != nil {
		return fmt.Errorf("failed to create interaction request: %w", err)
	}

	req.CreatedAt = now
	req.UpdatedAt = now
	return nil
}

// GetByID retrieves an interaction request by ID
func (r *InteractionRepository) GetByID(id uint) (*models.InteractionRequest, error) {
	query := `
		SELECT id, account_id, username, question, automated_reply, operator_reply,
		       feedback, escalation_requested, created_at, updated_at
		FROM interaction_requests
		WHERE id = $1
	`

	req := &models.InteractionRequest{}
	err := r.db.QueryRow(query, id).Scan(
		&req.ID,
		&req.AccountID,
		&req.Username,
		&req.Question,
		&req.AutomatedReply,
		&req.OperatorReply,
		&req.Feedback,
		&req.EscalationRequested,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrInteractionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interaction request: %w", err)
	}

	return req, nil
}

// UpdateAutomatedReply overwrites the automated reply of an interaction request
func (r *InteractionRepository) UpdateAutomatedReply(id uint, reply string) error {
	query := `
		UPDATE interaction_requests
		SET automated_reply = $1, updated_at = $2
		WHERE id = $3
	`
	return r.execExpectingRow(query, reply, time.Now(), id)
}

// SetOperatorReply sets the operator reply of an interaction request
func (r *InteractionRepository) SetOperatorReply(id uint, reply string) error {
	query := `
		UPDATE interaction_requests
		SET operator_reply = $1, updated_at = $2
		WHERE id = $3
	`
	return r.execExpectingRow(query, reply, time.Now(), id)
}

// SetFeedback sets the requester feedback of an interaction request
func (r *InteractionRepository) SetFeedback(id uint, feedback string) error {
	query := `
		UPDATE interaction_requests
		SET feedback = $1, updated_at = $2
		WHERE id = $3
	`
	return r.execExpectingRow(query, feedback, time.Now(), id)
}

// SetEscalationRequested marks an interaction request as escalated to
// an operator
func (r *InteractionRepository) SetEscalationRequested(id uint) error {
	query := `
		UPDATE interaction_requests
		SET escalation_requested = TRUE, updated_at = $1
		WHERE id = $2
	`
	return r.execExpectingRow(query, time.Now(), id)
}

func (r *InteractionRepository) execExpectingRow(query string, args ...interface{}) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update interaction request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrInteractionNotFound
	}

	return nil
}

// ListAll returns all interaction requests, newest first
func (r *InteractionRepository) ListAll() ([]models.InteractionRequest, error) {
	query := `
		SELECT id, account_id, username, question, automated_reply, operator_reply,
		       feedback, escalation_requested, created_at, updated_at
		FROM interaction_requests
		ORDER BY created_at DESC, id DESC
	`

	return r.queryInteractions(query)
}

// ListByAccountID returns the interaction requests of a single account,
// newest first
func (r *InteractionRepository) ListByAccountID(accountID uint) ([]models.InteractionRequest, error) {
	query := `
		SELECT id, account_id, username, question, automated_reply, operator_reply,
		       feedback, escalation_requested, created_at, updated_at
		FROM interaction_requests
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`

	return r.queryInteractions(query, accountID)
}

func (r *InteractionRepository) queryInteractions(query string, args ...interface{}) ([]models.InteractionRequest, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction requests: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}()

	var requests []models.InteractionRequest
	for rows.Next() {
		var req models.InteractionRequest
		if err := rows.Scan(
			&req.ID,
			&req.AccountID,
			&req.Username,
			&req.Question,
			&req.AutomatedReply,
			&req.OperatorReply,
			&req.Feedback,
			&req.EscalationRequested,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interaction request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interaction requests: %w", err)
	}

	return requests, nil
}
