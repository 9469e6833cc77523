package models

import "time"

// AdministratorProfile grants an account unrestricted access. Orthogonal to
// the consumer/company roles: it may coexist with either.
type AdministratorProfile struct {
	AccountID uint      `gorm:"primaryKey" json:"account_id"`
	Account   Account   `gorm:"constraint:OnDelete:CASCADE" json:"account"`
	CreatedAt time.Time `json:"created_at"`
}
