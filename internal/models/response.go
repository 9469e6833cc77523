package models

import "time"

// ResolutionStatus is the resolution sub-status a company attaches to a
// response. The earliest RESOLVED response on a complaint defines its
// resolution event for statistics.
type ResolutionStatus string

const (
	ResolutionStatusResolved    ResolutionStatus = "RESOLVED"
	ResolutionStatusUnresolved  ResolutionStatus = "UNRESOLVED"
	ResolutionStatusUnderReview ResolutionStatus = "UNDER_REVIEW"
)

// Response is a company reply to a complaint. A complaint may accumulate any
// number of responses; the most recent one is the "current" answer.
type Response struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ComplaintID uint           `gorm:"not null;index" json:"complaint_id"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	Company     CompanyProfile `gorm:"foreignKey:CompanyID;references:AccountID;constraint:OnDelete:CASCADE" json:"-"`

	Description      string           `gorm:"type:text;not null" json:"description"`
	ResolutionStatus ResolutionStatus `gorm:"size:20;not null" json:"resolution_status"`
	CreatedAt        time.Time        `json:"created_at"`
}
