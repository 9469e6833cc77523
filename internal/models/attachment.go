package models

import "time"

// Attachment is a file attached to a complaint. The file body lives outside
// the database; FileRef is the storage key it was written under, while
// Filename and ContentType preserve what the consumer uploaded.
type Attachment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID uint      `gorm:"not null;index" json:"complaint_id"`
	FileRef     string    `gorm:"not null" json:"file_ref"`
	Filename    string    `gorm:"not null" json:"filename"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
