package storage

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"complainthub/backend/internal/models"
)

// CreateComplaint persists a complaint and its attachment records in one
// transaction. A missing status defaults to OPEN.
func (s *Service) CreateComplaint(complaint *models.Complaint, attachments []models.Attachment) error {
	if complaint.Status == "" {
		complaint.Status = models.ComplaintStatusOpen
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}
		for i := range attachments {
			attachments[i].ComplaintID = complaint.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.Logger.Error("failed to save complaint",
			zap.Uint("company_id", complaint.CompanyID), zap.Error(err))
		return err
	}
	complaint.Attachments = attachments
	return nil
}

// GetComplaintByID loads a complaint with its responses and attachments.
// Returns nil without error when the complaint does not exist.
func (s *Service) GetComplaintByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Attachments").
		First(&complaint, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// UpdateComplaintStatus persists only the status column of the complaint.
func (s *Service) UpdateComplaintStatus(id uint, status models.ComplaintStatus) error {
	return s.DB.Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListComplaints returns complaints matching the filter, oldest first. The
// substring filters join through the owning profiles.
func (s *Service) ListComplaints(filter ComplaintFilter) ([]models.Complaint, error) {
	q := s.DB.Model(&models.Complaint{}).
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Attachments")

	if filter.ConsumerID != 0 {
		q = q.Where("complaints.consumer_id = ?", filter.ConsumerID)
	}
	if filter.CompanyID != 0 {
		q = q.Where("complaints.company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		q = q.Where("complaints.status = ?", filter.Status)
	}
	if filter.EmailContains != "" {
		q = q.Joins("JOIN accounts ON accounts.id = complaints.consumer_id").
			Where("accounts.email LIKE ?", "%"+filter.EmailContains+"%")
	}
	if filter.TaxIDContains != "" {
		q = q.Joins("JOIN company_profiles ON company_profiles.account_id = complaints.company_id").
			Where("company_profiles.tax_id LIKE ?", "%"+filter.TaxIDContains+"%")
	}

	var complaints []models.Complaint
	if err := q.Order("complaints.created_at asc").Find(&complaints).Error; err != nil {
		s.Logger.Error("failed to list complaints", zap.Error(err))
		return nil, err
	}
	return complaints, nil
}

// CreateResponse appends a company response to the log.
func (s *Service) CreateResponse(response *models.Response) error {
	if response.ResolutionStatus == "" {
		response.ResolutionStatus = models.ResolutionStatusUnderReview
	}
	return s.DB.Create(response).Error
}
