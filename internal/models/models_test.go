package models_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"complainthub/backend/internal/models"
)

// TestAccountStructTags verifies the tags backing the uniqueness invariants
// (useful for catching accidental tag removal during refactoring).
func TestAccountStructTags(t *testing.T) {
	accountType := reflect.TypeOf(models.Account{})

	emailField, found := accountType.FieldByName("Email")
	assert.True(t, found, "Email field should exist")
	assert.Contains(t, emailField.Tag.Get("gorm"), "uniqueIndex", "Email must carry a unique index")

	hashField, found := accountType.FieldByName("PasswordHash")
	assert.True(t, found, "PasswordHash field should exist")
	assert.Equal(t, "-", hashField.Tag.Get("json"), "PasswordHash must never serialize")
}

func TestCompanyProfileStructTags(t *testing.T) {
	companyType := reflect.TypeOf(models.CompanyProfile{})

	taxField, found := companyType.FieldByName("TaxID")
	assert.True(t, found, "TaxID field should exist")
	assert.Contains(t, taxField.Tag.Get("gorm"), "uniqueIndex", "TaxID must carry a unique index")

	accountField, found := companyType.FieldByName("AccountID")
	assert.True(t, found, "AccountID field should exist")
	assert.Contains(t, accountField.Tag.Get("gorm"), "primaryKey",
		"AccountID as primary key is the exclusivity backstop")
}

func TestReportTagsColumn(t *testing.T) {
	reportType := reflect.TypeOf(models.Report{})

	tagsField, found := reportType.FieldByName("Tags")
	assert.True(t, found, "Tags field should exist")
	assert.Contains(t, tagsField.Tag.Get("gorm"), "type:text[]", "Tags should use the PostgreSQL array type")
}

func TestStatusConstants(t *testing.T) {
	// The aggregator compares complaint status against the response
	// vocabulary for the resolved state; the two must stay in sync.
	assert.Equal(t, string(models.ResolutionStatusResolved), string(models.ComplaintStatusResolved))
	assert.Equal(t, string(models.ResolutionStatusUnderReview), string(models.ComplaintStatusUnderReview))
}
