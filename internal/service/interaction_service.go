package service

import (
	"errors"
	"fmt"
	"strings"

	"chatgate/internal/models"
	"chatgate/internal/repository"
	"chatgate/internal/securestore"
)

var ErrMissingField = errors.New("missing required field")

// InteractionService handles the interaction request ledger
type InteractionService struct {
	interactionRepo *repository.InteractionRepository
	store           *securestore.Store
}

// NewInteractionService creates a new interaction service
func NewInteractionService(
	interactionRepo *repository.InteractionRepository,
	store *securestore.Store,
) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		store:           store,
	}
}

// Log records a new interaction request. Question and automated reply
// are validated before anything is written, so a rejected request
// leaves no trace.
func (s *InteractionService) Log(accountID uint, username, question, automatedReply string) (*models.InteractionRequest, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(automatedReply) == "" {
		return nil, ErrMissingField
	}

	sealedQuestion, err := s.store.Seal(question)
	if err != nil {
		return nil, fmt.Errorf("failed to seal question: %w", err)
	}
	sealedReply, err := s.store.Seal(automatedReply)
	if err != nil {
		return nil, fmt.Errorf("failed to seal automated reply: %w", err)
	}

	req := &models.InteractionRequest{
		AccountID:      accountID,
		Username:       username,
		Question:       sealedQuestion,
		AutomatedReply: sealedReply,
	}

	if err := s.interactionRepo.Create(req); err != nil {
		return nil, fmt.Errorf("failed to log interaction: %w", err)
	}

	req.Question = question
	req.AutomatedReply = automatedReply
	return req, nil
}

// ReviseAutomatedReply overwrites the automated reply of an existing
// interaction request. Writing the same reply again succeeds.
func (s *InteractionService) ReviseAutomatedReply(id uint, reply string) error {
	if strings.TrimSpace(reply) == "" {
		return ErrMissingField
	}

	sealed, err := s.store.Seal(reply)
	if err != nil {
		return fmt.Errorf("failed to seal automated reply: %w", err)
	}

	return s.updateField(s.interactionRepo.UpdateAutomatedReply, id, sealed)
}

// SetOperatorReply sets the operator reply of an interaction request
func (s *InteractionService) SetOperatorReply(id uint, reply string) error {
	if strings.TrimSpace(reply) == "" {
		return ErrMissingField
	}

	sealed, err := s.store.Seal(reply)
	if err != nil {
		return fmt.Errorf("failed to seal operator reply: %w", err)
	}

	return s.updateField(s.interactionRepo.SetOperatorReply, id, sealed)
}

// SetFeedback records the requester's feedback on an interaction request
func (s *InteractionService) SetFeedback(id uint, feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return ErrMissingField
	}

	sealed, err := s.store.Seal(feedback)
	if err != nil {
		return fmt.Errorf("failed to seal feedback: %w", err)
	}

	return s.updateField(s.interactionRepo.SetFeedback, id, sealed)
}

// RequestEscalation marks an interaction request as needing an
// operator's attention. Escalating an already escalated request
// succeeds.
func (s *InteractionService) RequestEscalation(id uint) error {
	if err := s.interactionRepo.SetEscalationRequested(id); err != nil {
		if errors.Is(err, repository.ErrInteractionNotFound) {
			return repository.ErrInteractionNotFound
		}
		return fmt.Errorf("failed to request escalation: %w", err)
	}
	return nil
}

func (s *InteractionService) updateField(update func(uint, string) error, id uint, value string) error {
	if err := update(id, value); err != nil {
		if errors.Is(err, repository.ErrInteractionNotFound) {
			return repository.ErrInteractionNotFound
		}
		return fmt.Errorf("failed to update interaction: %w", err)
	}
	return nil
}

// List returns all interaction requests, newest first
func (s *InteractionService) List() ([]models.InteractionRequest, error) {
	requests, err := s.interactionRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	return s.openAll(requests)
}

// ListByAccount returns the interaction requests of a single account,
// newest first
func (s *InteractionService) ListByAccount(accountID uint) ([]models.InteractionRequest, error) {
	requests, err := s.interactionRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	return s.openAll(requests)
}

func (s *InteractionService) openAll(requests []models.InteractionRequest) ([]models.InteractionRequest, error) {
	for i := range requests {
		var err error
		if requests[i].Question, err = s.store.Open(requests[i].Question); err != nil {
			return nil, fmt.Errorf("failed to open question: %w", err)
		}
		if requests[i].AutomatedReply, err = s.store.Open(requests[i].AutomatedReply); err != nil {
			return nil, fmt.Errorf("failed to open automated reply: %w", err)
		}
		if requests[i].OperatorReply, err = s.store.OpenOptional(requests[i].OperatorReply); err != nil {
			return nil, fmt.Errorf("failed to open operator reply: %w", err)
		}
		if requests[i].Feedback, err = s.store.OpenOptional(requests[i].Feedback); err != nil {
			return nil, fmt.Errorf("failed to open feedback: %w", err)
		}
	}
	return requests, nil
}
