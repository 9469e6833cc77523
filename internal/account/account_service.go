// Package account provides registration, authentication and profile
// self-service for consumer, company and administrator accounts.
package account

import (
	"strings"

	"go.uber.org/zap"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// Service handles the business logic for accounts and role profiles.
type Service struct {
	Storage storage.Storage
	Logger  *zap.Logger
}

// NewService creates a new account service.
func NewService(st storage.Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Storage: st, Logger: logger}
}

type RegisterConsumerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type RegisterCompanyInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	TaxID       string
	LegalName   string
	TradeName   string
	Description string
}

// RegisterConsumer validates the input, creates the account with a hashed
// credential and its consumer profile atomically.
func (s *Service) RegisterConsumer(in RegisterConsumerInput) (*models.Account, *models.ConsumerProfile, error) {
	if err := s.validateBase(in.Name, in.Email, in.Password); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	account := &models.Account{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	profile := &models.ConsumerProfile{}
	if err := s.Storage.CreateConsumerAccount(account, profile); err != nil {
		return nil, nil, err
	}

	s.Logger.Info("consumer registered", zap.Uint("account_id", account.ID))
	return account, profile, nil
}

// RegisterCompany validates the input including tax-id uniqueness, then
// creates the account, the company profile and its zeroed statistics row
// atomically.
func (s *Service) RegisterCompany(in RegisterCompanyInput) (*models.Account, *models.CompanyProfile, error) {
	if err := s.validateBase(in.Name, in.Email, in.Password); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(in.TaxID) == "" {
		return nil, nil, apperr.Validation("tax_id", "tax id is required")
	}
	if strings.TrimSpace(in.LegalName) == "" {
		return nil, nil, apperr.Validation("legal_name", "legal name is required")
	}

	existing, err := s.Storage.GetCompanyProfileByTaxID(in.TaxID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperr.Validation("tax_id", "tax id already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	account := &models.Account{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	profile := &models.CompanyProfile{
		TaxID:       in.TaxID,
		LegalName:   in.LegalName,
		TradeName:   in.TradeName,
		Description: in.Description,
	}
	if err := s.Storage.CreateCompanyAccount(account, profile); err != nil {
		return nil, nil, err
	}

	s.Logger.Info("company registered",
		zap.Uint("account_id", account.ID), zap.String("tax_id", profile.TaxID))
	return account, profile, nil
}

// validateBase checks the fields shared by both registration paths,
// including email uniqueness. The unique index on accounts.email backs this
// check up under concurrent registrations.
func (s *Service) validateBase(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name", "name is required")
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.Validation("email", "a valid email is required")
	}
	if len(password) < 8 {
		return apperr.Validation("password", "password must be at least 8 characters")
	}

	existing, err := s.Storage.GetAccountByEmail(strings.ToLower(email))
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Validation("email", "email already registered")
	}
	return nil
}

// Authenticate verifies the credential pair and returns the account.
func (s *Service) Authenticate(email, password string) (*models.Account, error) {
	account, err := s.Storage.GetAccountByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if account == nil || !auth.CheckPassword(account.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return account, nil
}

// GetOwnConsumerProfile resolves the caller's consumer profile from the
// authenticated identity, never from client input.
func (s *Service) GetOwnConsumerProfile(caller *auth.Identity) (*models.ConsumerProfile, error) {
	if !caller.IsConsumer() {
		return nil, apperr.ErrForbidden
	}
	return caller.Consumer, nil
}

// GetOwnCompanyProfile resolves the caller's company profile from the
// authenticated identity.
func (s *Service) GetOwnCompanyProfile(caller *auth.Identity) (*models.CompanyProfile, error) {
	if !caller.IsCompany() {
		return nil, apperr.ErrForbidden
	}
	return caller.Company, nil
}

type UpdateCompanyInput struct {
	TradeName   *string
	Description *string
	Phone       *string
}

// UpdateCompanyProfile edits the mutable company fields. Legal name and tax
// id are registration facts and stay immutable here.
func (s *Service) UpdateCompanyProfile(caller *auth.Identity, in UpdateCompanyInput) (*models.CompanyProfile, error) {
	if !caller.IsCompany() {
		return nil, apperr.ErrForbidden
	}

	profile := caller.Company
	if in.TradeName != nil {
		profile.TradeName = *in.TradeName
	}
	if in.Description != nil {
		profile.Description = *in.Description
	}
	if err := s.Storage.UpdateCompanyProfile(profile); err != nil {
		return nil, err
	}

	if in.Phone != nil {
		caller.Account.Phone = *in.Phone
		if err := s.Storage.UpdateAccount(caller.Account); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// ListCompanies is the administrator directory view with optional filters.
func (s *Service) ListCompanies(caller *auth.Identity, filter storage.CompanyFilter) ([]models.CompanyProfile, error) {
	if !caller.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	return s.Storage.ListCompanies(filter)
}
