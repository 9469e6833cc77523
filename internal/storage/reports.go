package storage

import (
	"errors"

	"gorm.io/gorm"

	"complainthub/backend/internal/models"
)

func (s *Service) CreateReport(report *models.Report) error {
	return s.DB.Create(report).Error
}

// GetReportByID returns the report or nil when it does not exist.
func (s *Service) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	err := s.DB.First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) ListReports() ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) DeleteReport(id uint) error {
	return s.DB.Delete(&models.Report{}, id).Error
}
