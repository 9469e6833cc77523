package models

// CompanyStatistics is the derived per-company view of the complaint ledger.
// It is never authored directly: the aggregator recomputes the whole row from
// complaints and responses after every write, so the counters cannot drift.
type CompanyStatistics struct {
	CompanyID uint           `gorm:"primaryKey" json:"company_id"`
	Company   CompanyProfile `gorm:"foreignKey:CompanyID;references:AccountID;constraint:OnDelete:CASCADE" json:"-"`

	TotalComplaints int `json:"total_complaints"`
	ResolvedCount   int `json:"resolved_count"`
	// PendingCount is always TotalComplaints - ResolvedCount.
	PendingCount int `json:"pending_count"`
	// AverageResolutionHours is the mean time from complaint creation to its
	// earliest RESOLVED response, in hours. 0 when nothing has been resolved.
	AverageResolutionHours float64 `json:"average_resolution_hours"`
}
