package models

import "time"

// Account is the base authenticated identity record. Role capabilities come
// from the one-to-one profile rows (ConsumerProfile, CompanyProfile,
// AdministratorProfile) that reference it.
type Account struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Email is the login identifier, unique across all accounts.
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Name is the display name of the person or company contact.
	Name  string `json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	// PasswordHash holds the bcrypt hash of the credential. Never serialized.
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
