package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"chatgate/internal/auth"
	"chatgate/internal/config"
	"chatgate/internal/models"
	"chatgate/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration and login business logic
type AuthService struct {
	accountRepo *repository.AccountRepository
	authSvc     *auth.Service
	adminCfg    *config.AdminConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo *repository.AccountRepository,
	authSvc *auth.Service,
	adminCfg *config.AdminConfig,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		authSvc:     authSvc,
		adminCfg:    adminCfg,
	}
}

// Register creates a new account together with its pending role entry
func (s *AuthService) Register(username, password string) (*models.Account, error) {
	passwordHash, err := s.authSvc.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.accountRepo.CreateWithRole(account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, repository.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Login verifies credentials and issues an access token. A wrong
// username and a wrong password produce the same error.
func (s *AuthService) Login(username, password string) (string, *models.Account, error) {
	account, err := s.accountRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.authSvc.VerifyPassword(account.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.authSvc.GenerateToken(account.ID, account.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, account, nil
}

// LoginMaster checks the supplied pair against the configured master
// credentials and issues a master token. The master identity is
// configured out of band and has no account row, so this never touches
// the database.
func (s *AuthService) LoginMaster(username, password string) (string, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminCfg.Username))
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCfg.Password))
	if usernameMatch != 1 || passwordMatch != 1 {
		return "", ErrInvalidCredentials
	}

	token, err := s.authSvc.GenerateMasterToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
