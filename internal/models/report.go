package models

import (
	"time"

	"github.com/lib/pq"
)

// Report is an administrator-authored text report. The author reference is
// nullable so reports outlive the administrator that wrote them.
type Report struct {
	ID              uint                  `gorm:"primaryKey" json:"id"`
	AdministratorID *uint                 `json:"administrator_id"`
	Administrator   *AdministratorProfile `gorm:"foreignKey:AdministratorID;references:AccountID;constraint:OnDelete:SET NULL" json:"-"`

	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
}
