package storage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/models"
)

// GetAccountByID returns the account or nil when it does not exist.
func (s *Service) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	err := s.DB.First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByEmail returns the account or nil when no account uses the email.
func (s *Service) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := s.DB.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) UpdateAccount(account *models.Account) error {
	return s.DB.Save(account).Error
}

// CreateConsumerAccount persists the account (when new) and its consumer
// profile in one transaction. The cross-role existence check runs inside the
// transaction; the unique primary key on consumer_profiles.account_id is the
// constraint backstop for concurrent registrations.
func (s *Service) CreateConsumerAccount(account *models.Account, profile *models.ConsumerProfile) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if account.ID == 0 {
			if err := tx.Create(account).Error; err != nil {
				return err
			}
		}
		var conflicts int64
		if err := tx.Model(&models.CompanyProfile{}).
			Where("account_id = ?", account.ID).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return apperr.Validation("account", "an account registered as a company cannot also be a consumer")
		}
		profile.AccountID = account.ID
		return tx.Create(profile).Error
	})
	return s.translateAccountErr(err)
}

// CreateCompanyAccount persists the account (when new), the company profile
// and a zeroed statistics row in one transaction. Mirrors
// CreateConsumerAccount for the symmetric exclusivity check.
func (s *Service) CreateCompanyAccount(account *models.Account, profile *models.CompanyProfile) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if account.ID == 0 {
			if err := tx.Create(account).Error; err != nil {
				return err
			}
		}
		var conflicts int64
		if err := tx.Model(&models.ConsumerProfile{}).
			Where("account_id = ?", account.ID).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return apperr.Validation("account", "an account registered as a consumer cannot also be a company")
		}
		profile.AccountID = account.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		stats := models.CompanyStatistics{CompanyID: profile.AccountID}
		return tx.Create(&stats).Error
	})
	return s.translateAccountErr(err)
}

// translateAccountErr converts constraint violations caught by the database
// after the application-level check passed into the same ValidationError the
// check itself would have produced.
func (s *Service) translateAccountErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		s.Logger.Warn("uniqueness constraint caught a concurrent write", zap.Error(err))
		return apperr.Validation("account", "email, tax id or role already registered")
	}
	return err
}

// EnsureAdministrator grants the administrator role to an existing account,
// returning the profile whether it was just created or already there.
func (s *Service) EnsureAdministrator(accountID uint) (*models.AdministratorProfile, error) {
	profile := models.AdministratorProfile{AccountID: accountID}
	result := s.DB.Where("account_id = ?", accountID).FirstOrCreate(&profile)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ensure administrator profile: %w", result.Error)
	}
	return &profile, nil
}

func (s *Service) GetConsumerProfile(accountID uint) (*models.ConsumerProfile, error) {
	var profile models.ConsumerProfile
	err := s.DB.Preload("Account").Where("account_id = ?", accountID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) GetCompanyProfile(accountID uint) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := s.DB.Preload("Account").Where("account_id = ?", accountID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) GetCompanyProfileByTaxID(taxID string) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := s.DB.Where("tax_id = ?", taxID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) GetAdministratorProfile(accountID uint) (*models.AdministratorProfile, error) {
	var profile models.AdministratorProfile
	err := s.DB.Where("account_id = ?", accountID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) UpdateCompanyProfile(profile *models.CompanyProfile) error {
	return s.translateAccountErr(s.DB.Save(profile).Error)
}

// ListCompanies returns company profiles, optionally narrowed by email or
// tax-id substring. Administrator-only at the service layer.
func (s *Service) ListCompanies(filter CompanyFilter) ([]models.CompanyProfile, error) {
	q := s.DB.Preload("Account").Model(&models.CompanyProfile{})
	if filter.EmailContains != "" {
		q = q.Joins("JOIN accounts ON accounts.id = company_profiles.account_id").
			Where("accounts.email LIKE ?", "%"+filter.EmailContains+"%")
	}
	if filter.TaxIDContains != "" {
		q = q.Where("company_profiles.tax_id LIKE ?", "%"+filter.TaxIDContains+"%")
	}

	var companies []models.CompanyProfile
	if err := q.Order("company_profiles.account_id asc").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
