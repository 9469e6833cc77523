package models

import "time"

// ComplaintStatus is the lifecycle state of a complaint.
type ComplaintStatus string

const (
	ComplaintStatusOpen        ComplaintStatus = "OPEN"
	ComplaintStatusUnderReview ComplaintStatus = "UNDER_REVIEW"
	ComplaintStatusResolved    ComplaintStatus = "RESOLVED"
	ComplaintStatusClosed      ComplaintStatus = "CLOSED"
)

// Complaint is a consumer-authored grievance against a company. The consumer
// and company references are fixed at creation; only Status changes
// afterwards, driven by response writes or an explicit close.
type Complaint struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ConsumerID uint            `gorm:"not null;index" json:"consumer_id"`
	Consumer   ConsumerProfile `gorm:"foreignKey:ConsumerID;references:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	CompanyID  uint            `gorm:"not null;index" json:"company_id"`
	Company    CompanyProfile  `gorm:"foreignKey:CompanyID;references:AccountID;constraint:OnDelete:CASCADE" json:"-"`

	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Status      ComplaintStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`

	Responses   []Response   `gorm:"constraint:OnDelete:CASCADE" json:"responses,omitempty"`
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}
