package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"complainthub/backend/internal/models"
)

// Storage is the persistence surface the domain services depend on.
type Storage interface {
	// Accounts and role profiles.
	GetAccountByID(id uint) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	UpdateAccount(account *models.Account) error
	CreateConsumerAccount(account *models.Account, profile *models.ConsumerProfile) error
	CreateCompanyAccount(account *models.Account, profile *models.CompanyProfile) error
	EnsureAdministrator(accountID uint) (*models.AdministratorProfile, error)
	GetConsumerProfile(accountID uint) (*models.ConsumerProfile, error)
	GetCompanyProfile(accountID uint) (*models.CompanyProfile, error)
	GetCompanyProfileByTaxID(taxID string) (*models.CompanyProfile, error)
	GetAdministratorProfile(accountID uint) (*models.AdministratorProfile, error)
	UpdateCompanyProfile(profile *models.CompanyProfile) error
	ListCompanies(filter CompanyFilter) ([]models.CompanyProfile, error)

	// Complaint ledger and response log.
	CreateComplaint(complaint *models.Complaint, attachments []models.Attachment) error
	GetComplaintByID(id uint) (*models.Complaint, error)
	UpdateComplaintStatus(id uint, status models.ComplaintStatus) error
	ListComplaints(filter ComplaintFilter) ([]models.Complaint, error)
	CreateResponse(response *models.Response) error

	// Derived statistics.
	GetStatistics(companyID uint) (*models.CompanyStatistics, error)

	// Reports.
	CreateReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	ListReports() ([]models.Report, error)
	DeleteReport(id uint) error
}

// CompanyFilter narrows company listings. Zero values mean no filtering.
type CompanyFilter struct {
	EmailContains string
	TaxIDContains string
}

// ComplaintFilter narrows complaint listings. Zero values mean no filtering.
// The substring filters are only reachable by administrators.
type ComplaintFilter struct {
	ConsumerID    uint
	CompanyID     uint
	Status        models.ComplaintStatus
	EmailContains string
	TaxIDContains string
}

type Service struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ctx    context.Context
	Logger *zap.Logger
}

// NewStorageService Constructor. rdb may be nil; Redis-backed features
// (statistics cache) are skipped in that case.
func NewStorageService(db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		DB:     db,
		Redis:  rdb,
		Ctx:    context.Background(),
		Logger: logger,
	}
}
