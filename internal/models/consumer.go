package models

import "time"

// ConsumerProfile marks an account as a consumer, able to file complaints.
// An account holds at most one of ConsumerProfile and CompanyProfile; the
// primary key on AccountID doubles as the uniqueness backstop for that rule.
type ConsumerProfile struct {
	AccountID uint      `gorm:"primaryKey" json:"account_id"`
	Account   Account   `gorm:"constraint:OnDelete:CASCADE" json:"account"`
	CreatedAt time.Time `json:"created_at"`
}
