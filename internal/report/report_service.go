// Package report provides administrator-authored report CRUD.
package report

import (
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// Service handles the business logic for reports. Every operation is
// administrator-only.
type Service struct {
	Storage storage.Storage
	Logger  *zap.Logger
}

func NewService(st storage.Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Storage: st, Logger: logger}
}

func (s *Service) Create(caller *auth.Identity, title, content string, tags []string) (*models.Report, error) {
	if !caller.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content", "content is required")
	}

	adminID := caller.Admin.AccountID
	rep := &models.Report{
		AdministratorID: &adminID,
		Title:           title,
		Content:         content,
		Tags:            pq.StringArray(tags),
	}
	if err := s.Storage.CreateReport(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) List(caller *auth.Identity) ([]models.Report, error) {
	if !caller.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	return s.Storage.ListReports()
}

func (s *Service) Get(caller *auth.Identity, id uint) (*models.Report, error) {
	if !caller.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	rep, err := s.Storage.GetReportByID(id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, apperr.ErrNotFound
	}
	return rep, nil
}

func (s *Service) Delete(caller *auth.Identity, id uint) error {
	if !caller.IsAdmin() {
		return apperr.ErrForbidden
	}
	rep, err := s.Storage.GetReportByID(id)
	if err != nil {
		return err
	}
	if rep == nil {
		return apperr.ErrNotFound
	}
	return s.Storage.DeleteReport(id)
}
