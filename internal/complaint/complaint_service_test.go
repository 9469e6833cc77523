package complaint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// MockRecomputer stands in for the statistics aggregator so tests can assert
// exactly when the write paths trigger a recompute.
type MockRecomputer struct {
	mock.Mock
}

func (m *MockRecomputer) Recompute(companyID uint) error {
	args := m.Called(companyID)
	return args.Error(0)
}

func newTestStorage(t *testing.T) *storage.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open SQLite test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Account{},
		&models.ConsumerProfile{},
		&models.CompanyProfile{},
		&models.AdministratorProfile{},
		&models.Complaint{},
		&models.Attachment{},
		&models.Response{},
		&models.CompanyStatistics{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return storage.NewStorageService(db, nil, nil)
}

type fixture struct {
	storage  *storage.Service
	stats    *MockRecomputer
	service  *complaint.Service
	consumer *auth.Identity
	company  *auth.Identity
	admin    *auth.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := newTestStorage(t)
	statsMock := new(MockRecomputer)
	svc := complaint.NewService(s, statsMock, t.TempDir(), nil)

	consumerAcc := &models.Account{Email: "consumer@example.com", Name: "Ana", PasswordHash: "x"}
	consumerProfile := &models.ConsumerProfile{}
	if err := s.CreateConsumerAccount(consumerAcc, consumerProfile); err != nil {
		t.Fatalf("Failed to seed consumer: %v", err)
	}

	companyAcc := &models.Account{Email: "company@example.com", Name: "Acme", PasswordHash: "x"}
	companyProfile := &models.CompanyProfile{TaxID: "12.345.678/0001-00", LegalName: "Acme Ltd"}
	if err := s.CreateCompanyAccount(companyAcc, companyProfile); err != nil {
		t.Fatalf("Failed to seed company: %v", err)
	}

	adminAcc := &models.Account{Email: "admin@example.com", Name: "Root", PasswordHash: "x"}
	if err := s.DB.Create(adminAcc).Error; err != nil {
		t.Fatalf("Failed to seed admin account: %v", err)
	}
	adminProfile, err := s.EnsureAdministrator(adminAcc.ID)
	if err != nil {
		t.Fatalf("Failed to seed admin profile: %v", err)
	}

	return &fixture{
		storage:  s,
		stats:    statsMock,
		service:  svc,
		consumer: &auth.Identity{Account: consumerAcc, Consumer: consumerProfile},
		company:  &auth.Identity{Account: companyAcc, Company: companyProfile},
		admin:    &auth.Identity{Account: adminAcc, Admin: adminProfile},
	}
}

func (f *fixture) file(t *testing.T, title string) *models.Complaint {
	t.Helper()
	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()
	created, err := f.service.Create(f.consumer, f.company.Company.AccountID, title, "details", nil)
	if err != nil {
		t.Fatalf("Failed to file complaint: %v", err)
	}
	return created
}

func TestCreate_ConsumerFilesComplaint(t *testing.T) {
	f := newFixture(t)

	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()

	created, err := f.service.Create(f.consumer, f.company.Company.AccountID,
		"No refund", "Ordered a kettle, never arrived.", []complaint.FileUpload{
			{Filename: "receipt.png", ContentType: "image/png", Data: []byte("png-bytes")},
		})

	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusOpen, created.Status)
	assert.Equal(t, f.consumer.Consumer.AccountID, created.ConsumerID,
		"consumer id must come from the caller identity")
	assert.Len(t, created.Attachments, 1)
	assert.Equal(t, "receipt.png", created.Attachments[0].Filename)
	assert.NotEmpty(t, created.Attachments[0].FileRef)
	f.stats.AssertExpectations(t)
}

func TestCreate_Authorization(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(f.company, f.company.Company.AccountID, "t", "d", nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "companies cannot file complaints")

	_, err = f.service.Create(f.admin, f.company.Company.AccountID, "t", "d", nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "administrators without a consumer profile cannot file")

	f.stats.AssertNotCalled(t, "Recompute", mock.Anything)
}

func TestCreate_UnknownCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(f.consumer, 9999, "t", "d", nil)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(f.consumer, f.company.Company.AccountID, "", "d", nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = f.service.Create(f.consumer, f.company.Company.AccountID, "t", "  ", nil)
	assert.True(t, apperr.IsValidation(err))
}

func TestRespond_StatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		resolution models.ResolutionStatus
		expected   models.ComplaintStatus
	}{
		{"resolved response resolves the complaint", models.ResolutionStatusResolved, models.ComplaintStatusResolved},
		{"under-review response moves it to under review", models.ResolutionStatusUnderReview, models.ComplaintStatusUnderReview},
		{"unresolved response leaves it open", models.ResolutionStatusUnresolved, models.ComplaintStatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			created := f.file(t, "Transition")

			f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()
			_, err := f.service.Respond(f.company, created.ID, "our reply", tt.resolution)
			assert.NoError(t, err)

			reloaded, err := f.storage.GetComplaintByID(created.ID)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, reloaded.Status)
			// The recompute fires whether or not the status changed.
			f.stats.AssertExpectations(t)
		})
	}
}

// TestRespond_ResolvedIsTerminal: a later UNDER_REVIEW response must not
// reopen a resolved complaint, keeping the resolved count stable.
func TestRespond_ResolvedIsTerminal(t *testing.T) {
	f := newFixture(t)
	created := f.file(t, "Settled")

	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Twice()

	_, err := f.service.Respond(f.company, created.ID, "fixed", models.ResolutionStatusResolved)
	assert.NoError(t, err)

	_, err = f.service.Respond(f.company, created.ID, "checking again", models.ResolutionStatusUnderReview)
	assert.NoError(t, err)

	reloaded, err := f.storage.GetComplaintByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, reloaded.Status)
	assert.Len(t, reloaded.Responses, 2)
}

func TestRespond_Authorization(t *testing.T) {
	f := newFixture(t)
	created := f.file(t, "Auth")

	_, err := f.service.Respond(f.consumer, created.ID, "reply", models.ResolutionStatusResolved)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "consumers cannot respond")

	// A different company than the one the complaint targets.
	otherAcc := &models.Account{Email: "other@example.com", Name: "Other", PasswordHash: "x"}
	otherProfile := &models.CompanyProfile{TaxID: "99", LegalName: "Other Ltd"}
	assert.NoError(t, f.storage.CreateCompanyAccount(otherAcc, otherProfile))
	other := &auth.Identity{Account: otherAcc, Company: otherProfile}

	_, err = f.service.Respond(other, created.ID, "reply", models.ResolutionStatusResolved)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "only the targeted company may respond")

	reloaded, _ := f.storage.GetComplaintByID(created.ID)
	assert.Empty(t, reloaded.Responses, "rejected responses must leave no side effects")
}

func TestRespond_DefaultsToUnderReview(t *testing.T) {
	f := newFixture(t)
	created := f.file(t, "Default")

	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()
	response, err := f.service.Respond(f.company, created.ID, "looking into it", "")

	assert.NoError(t, err)
	assert.Equal(t, models.ResolutionStatusUnderReview, response.ResolutionStatus)
}

func TestList_VisibilityByRole(t *testing.T) {
	f := newFixture(t)
	f.file(t, "Mine")

	// A second consumer with their own complaint.
	otherAcc := &models.Account{Email: "rival@example.com", Name: "Rival", PasswordHash: "x"}
	otherProfile := &models.ConsumerProfile{}
	assert.NoError(t, f.storage.CreateConsumerAccount(otherAcc, otherProfile))
	other := &auth.Identity{Account: otherAcc, Consumer: otherProfile}

	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()
	_, err := f.service.Create(other, f.company.Company.AccountID, "Theirs", "d", nil)
	assert.NoError(t, err)

	mine, err := f.service.List(f.consumer, storage.ComplaintFilter{})
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)

	theirs, err := f.service.List(other, storage.ComplaintFilter{})
	assert.NoError(t, err)
	assert.Len(t, theirs, 1)
	assert.Equal(t, "Theirs", theirs[0].Title)

	companyView, err := f.service.List(f.company, storage.ComplaintFilter{})
	assert.NoError(t, err)
	assert.Len(t, companyView, 2)

	adminView, err := f.service.List(f.admin, storage.ComplaintFilter{})
	assert.NoError(t, err)
	assert.Len(t, adminView, 2)
}

// TestList_ConsumerCannotWidenFilter: a consumer passing another consumer's
// id in the filter still only sees their own complaints.
func TestList_ConsumerCannotWidenFilter(t *testing.T) {
	f := newFixture(t)
	f.file(t, "Mine")

	otherAcc := &models.Account{Email: "rival@example.com", Name: "Rival", PasswordHash: "x"}
	otherProfile := &models.ConsumerProfile{}
	assert.NoError(t, f.storage.CreateConsumerAccount(otherAcc, otherProfile))
	other := &auth.Identity{Account: otherAcc, Consumer: otherProfile}

	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()
	_, err := f.service.Create(other, f.company.Company.AccountID, "Theirs", "d", nil)
	assert.NoError(t, err)

	listed, err := f.service.List(f.consumer, storage.ComplaintFilter{
		ConsumerID: otherProfile.AccountID,
	})
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "Mine", listed[0].Title)
}

// TestList_RolelessCallerDenied: an account with no role profile gets a
// denial, not an unrestricted read.
func TestList_RolelessCallerDenied(t *testing.T) {
	f := newFixture(t)

	bareAcc := &models.Account{Email: "bare@example.com", Name: "Bare", PasswordHash: "x"}
	assert.NoError(t, f.storage.DB.Create(bareAcc).Error)

	_, err := f.service.List(&auth.Identity{Account: bareAcc}, storage.ComplaintFilter{})

	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGet_Visibility(t *testing.T) {
	f := newFixture(t)
	created := f.file(t, "Visible")

	got, err := f.service.Get(f.consumer, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.service.Get(f.admin, created.ID)
	assert.NoError(t, err)

	otherAcc := &models.Account{Email: "rival@example.com", Name: "Rival", PasswordHash: "x"}
	otherProfile := &models.ConsumerProfile{}
	assert.NoError(t, f.storage.CreateConsumerAccount(otherAcc, otherProfile))

	_, err = f.service.Get(&auth.Identity{Account: otherAcc, Consumer: otherProfile}, created.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "another consumer must never see the complaint")

	_, err = f.service.Get(f.consumer, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	created := f.file(t, "Closable")

	_, err := f.service.Close(f.company, created.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "companies cannot close complaints")

	f.stats.On("Recompute", f.company.Company.AccountID).Return(nil).Once()
	closed, err := f.service.Close(f.consumer, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusClosed, closed.Status)

	// Closing again is a no-op and triggers no further recompute.
	again, err := f.service.Close(f.admin, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusClosed, again.Status)
	f.stats.AssertExpectations(t)
}

// TestRecomputeFailureDoesNotFailWrite: a broken aggregator must not undo
// the primary complaint write.
func TestRecomputeFailureDoesNotFailWrite(t *testing.T) {
	f := newFixture(t)

	f.stats.On("Recompute", f.company.Company.AccountID).Return(assert.AnError).Once()

	created, err := f.service.Create(f.consumer, f.company.Company.AccountID, "Survives", "d", nil)
	assert.NoError(t, err)

	reloaded, err := f.storage.GetComplaintByID(created.ID)
	assert.NoError(t, err)
	assert.NotNil(t, reloaded)
}
