// Package complaint provides the core logic for the complaint lifecycle:
// filing, company responses, status transitions and role-scoped visibility.
package complaint

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// Recomputer is the statistics hook the write paths invoke after every
// complaint or response write.
type Recomputer interface {
	Recompute(companyID uint) error
}

// Service handles the business logic for complaints.
type Service struct {
	Storage   storage.Storage
	Stats     Recomputer
	UploadDir string
	Logger    *zap.Logger
}

// NewService creates a new complaint service.
func NewService(st storage.Storage, stats Recomputer, uploadDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Storage: st, Stats: stats, UploadDir: uploadDir, Logger: logger}
}

// FileUpload is an attachment body received with a new complaint.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Create files a complaint against a company. Only consumers may file, and
// the consumer reference always comes from the caller's identity, never from
// client input. Statistics are recomputed after the write; a recompute
// failure is logged but does not undo the complaint.
func (s *Service) Create(caller *auth.Identity, companyID uint, title, description string, files []FileUpload) (*models.Complaint, error) {
	if !caller.IsConsumer() {
		return nil, apperr.ErrForbidden
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("description", "description is required")
	}

	company, err := s.Storage.GetCompanyProfile(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperr.ErrNotFound
	}

	attachments, err := s.storeFiles(files)
	if err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		ConsumerID:  caller.Consumer.AccountID,
		CompanyID:   companyID,
		Title:       title,
		Description: description,
		Status:      models.ComplaintStatusOpen,
	}
	if err := s.Storage.CreateComplaint(complaint, attachments); err != nil {
		return nil, err
	}

	s.recompute(companyID)
	return complaint, nil
}

// storeFiles writes attachment bodies under the upload directory keyed by a
// fresh UUID, keeping the original filename and content type as metadata.
func (s *Service) storeFiles(files []FileUpload) ([]models.Attachment, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return nil, err
	}

	attachments := make([]models.Attachment, 0, len(files))
	for _, f := range files {
		if f.Filename == "" {
			return nil, apperr.Validation("files", "attachment filename is required")
		}
		key := uuid.New().String() + filepath.Ext(f.Filename)
		if err := os.WriteFile(filepath.Join(s.UploadDir, key), f.Data, 0o644); err != nil {
			return nil, err
		}
		attachments = append(attachments, models.Attachment{
			FileRef:     key,
			Filename:    f.Filename,
			ContentType: f.ContentType,
		})
	}
	return attachments, nil
}

// Respond records a company response to a complaint and applies the status
// transition its resolution sub-status implies: RESOLVED and UNDER_REVIEW
// move the complaint to the matching status when different, except that a
// resolved or closed complaint is never reopened by a later response. Only
// the status column is written, and only when it changes. Statistics are
// recomputed in every case.
func (s *Service) Respond(caller *auth.Identity, complaintID uint, description string, resolution models.ResolutionStatus) (*models.Response, error) {
	if !caller.IsCompany() {
		return nil, apperr.ErrForbidden
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("description", "description is required")
	}
	if resolution == "" {
		resolution = models.ResolutionStatusUnderReview
	}
	switch resolution {
	case models.ResolutionStatusResolved, models.ResolutionStatusUnresolved, models.ResolutionStatusUnderReview:
	default:
		return nil, apperr.Validation("resolution_status", "unknown resolution status")
	}

	complaint, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperr.ErrNotFound
	}
	if complaint.CompanyID != caller.Company.AccountID {
		return nil, apperr.ErrForbidden
	}

	response := &models.Response{
		ComplaintID:      complaint.ID,
		CompanyID:        caller.Company.AccountID,
		Description:      description,
		ResolutionStatus: resolution,
	}
	if err := s.Storage.CreateResponse(response); err != nil {
		return nil, err
	}

	if next, changed := nextStatus(complaint.Status, resolution); changed {
		if err := s.Storage.UpdateComplaintStatus(complaint.ID, next); err != nil {
			return nil, err
		}
	}

	s.recompute(complaint.CompanyID)
	return response, nil
}

// nextStatus maps a response's resolution sub-status onto the complaint
// lifecycle. Settled complaints (RESOLVED, CLOSED) stay settled.
func nextStatus(current models.ComplaintStatus, resolution models.ResolutionStatus) (models.ComplaintStatus, bool) {
	if current == models.ComplaintStatusResolved || current == models.ComplaintStatusClosed {
		return current, false
	}
	switch resolution {
	case models.ResolutionStatusResolved:
		return models.ComplaintStatusResolved, current != models.ComplaintStatusResolved
	case models.ResolutionStatusUnderReview:
		return models.ComplaintStatusUnderReview, current != models.ComplaintStatusUnderReview
	}
	return current, false
}

// List returns the complaints the caller is allowed to see. Consumers see
// their own, companies the ones targeting them, administrators everything
// with the optional search filters. Callers with no role profile are denied.
func (s *Service) List(caller *auth.Identity, filter storage.ComplaintFilter) ([]models.Complaint, error) {
	switch {
	case caller.IsAdmin():
		// Admin search filters pass through untouched.
	case caller.IsConsumer():
		filter = storage.ComplaintFilter{
			ConsumerID: caller.Consumer.AccountID,
			Status:     filter.Status,
		}
	case caller.IsCompany():
		filter = storage.ComplaintFilter{
			CompanyID: caller.Company.AccountID,
			Status:    filter.Status,
		}
	default:
		return nil, apperr.ErrForbidden
	}
	return s.Storage.ListComplaints(filter)
}

// Get returns one complaint with responses and attachments, applying the
// same visibility rules as List.
func (s *Service) Get(caller *auth.Identity, id uint) (*models.Complaint, error) {
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperr.ErrNotFound
	}
	if !s.canSee(caller, complaint) {
		return nil, apperr.ErrForbidden
	}
	return complaint, nil
}

func (s *Service) canSee(caller *auth.Identity, complaint *models.Complaint) bool {
	switch {
	case caller.IsAdmin():
		return true
	case caller.IsConsumer() && complaint.ConsumerID == caller.Consumer.AccountID:
		return true
	case caller.IsCompany() && complaint.CompanyID == caller.Company.AccountID:
		return true
	}
	return false
}

// Close moves a complaint to its terminal CLOSED state. The owning consumer
// or an administrator may close; statistics are recomputed afterwards.
func (s *Service) Close(caller *auth.Identity, id uint) (*models.Complaint, error) {
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperr.ErrNotFound
	}

	owner := caller.IsConsumer() && complaint.ConsumerID == caller.Consumer.AccountID
	if !owner && !caller.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	if complaint.Status == models.ComplaintStatusClosed {
		return complaint, nil
	}

	if err := s.Storage.UpdateComplaintStatus(complaint.ID, models.ComplaintStatusClosed); err != nil {
		return nil, err
	}
	complaint.Status = models.ComplaintStatusClosed

	s.recompute(complaint.CompanyID)
	return complaint, nil
}

// recompute runs the statistics hook best-effort: a failure leaves the
// primary write intact and surfaces only in the log.
func (s *Service) recompute(companyID uint) {
	if s.Stats == nil {
		return
	}
	if err := s.Stats.Recompute(companyID); err != nil {
		s.Logger.Error("statistics recompute failed",
			zap.Uint("company_id", companyID), zap.Error(err))
	}
}
