// Package stats keeps CompanyStatistics consistent with the complaint ledger
// and response log. The row is recomputed from scratch on every trigger
// rather than patched incrementally, so missed update paths cannot make the
// counters drift.
package stats

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// Aggregator recomputes per-company statistics. The write paths invoke it
// explicitly after every complaint or response write; there is no implicit
// listener.
type Aggregator struct {
	Storage *storage.Service
	Logger  *zap.Logger
}

func NewAggregator(st *storage.Service, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{Storage: st, Logger: logger}
}

// Recompute rebuilds the statistics row for the company from the full
// complaint and response history. It is idempotent: with no intervening
// writes, consecutive runs produce identical rows. The row lock serializes
// concurrent recomputes for the same company.
func (a *Aggregator) Recompute(companyID uint) error {
	err := a.Storage.DB.Transaction(func(tx *gorm.DB) error {
		stats, err := lockStatisticsRow(tx, companyID)
		if err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.Complaint{}).
			Where("company_id = ?", companyID).
			Count(&total).Error; err != nil {
			return err
		}

		var resolved []models.Complaint
		if err := tx.
			Where("company_id = ? AND status = ?", companyID, models.ComplaintStatusResolved).
			Find(&resolved).Error; err != nil {
			return err
		}

		// The resolution event of a complaint is its earliest RESOLVED
		// response; complaints resolved without one contribute nothing to
		// the average.
		var totalDuration time.Duration
		measured := 0
		for _, complaint := range resolved {
			var first models.Response
			err := tx.
				Where("complaint_id = ? AND resolution_status = ?",
					complaint.ID, models.ResolutionStatusResolved).
				Order("created_at asc").
				First(&first).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			totalDuration += first.CreatedAt.Sub(complaint.CreatedAt)
			measured++
		}

		stats.TotalComplaints = int(total)
		stats.ResolvedCount = len(resolved)
		// Complement of the resolved count, never an independent filter:
		// the two always sum to the total.
		stats.PendingCount = int(total) - len(resolved)
		if measured > 0 {
			stats.AverageResolutionHours = (totalDuration / time.Duration(measured)).Hours()
		} else {
			stats.AverageResolutionHours = 0.0
		}

		return tx.Save(stats).Error
	})
	if err != nil {
		return err
	}

	a.Storage.InvalidateStatisticsCache(companyID)
	a.Logger.Info("statistics recomputed", zap.Uint("company_id", companyID))
	return nil
}

// lockStatisticsRow fetches the statistics row under a row lock, creating it
// when the company predates statistics. SQLite has no SELECT ... FOR UPDATE;
// its transactions already serialize writers.
func lockStatisticsRow(tx *gorm.DB, companyID uint) (*models.CompanyStatistics, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var stats models.CompanyStatistics
	err := q.Where("company_id = ?", companyID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.CompanyStatistics{CompanyID: companyID}
		if err := tx.Create(&stats).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the creation race; lock the row the winner made.
				err = q.Where("company_id = ?", companyID).First(&stats).Error
				if err != nil {
					return nil, err
				}
				return &stats, nil
			}
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
