package models

import "time"

// CompanyProfile marks an account as a company that can receive complaints
// and respond to them. Mutually exclusive with ConsumerProfile for the same
// account.
type CompanyProfile struct {
	AccountID uint    `gorm:"primaryKey" json:"account_id"`
	Account   Account `gorm:"constraint:OnDelete:CASCADE" json:"account"`
	// TaxID is the company registration number, unique across companies.
	TaxID string `gorm:"size:18;uniqueIndex;not null" json:"tax_id"`
	// LegalName is the registered corporate name.
	LegalName string `gorm:"not null" json:"legal_name"`
	// TradeName is the public-facing name, optional.
	TradeName   string    `json:"trade_name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
