package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/models"
)

// statsCacheTTL keeps cached statistics short-lived: the aggregator
// invalidates on every recompute, the TTL only bounds staleness if an
// invalidation is lost.
const statsCacheTTL = 5 * time.Minute

func statsCacheKey(companyID uint) string {
	return fmt.Sprintf("stats:%d", companyID)
}

// GetStatistics returns the statistics row for the company, from the Redis
// cache when possible. A company that predates its statistics row gets a
// zeroed row created lazily; an unknown company yields ErrNotFound.
func (s *Service) GetStatistics(companyID uint) (*models.CompanyStatistics, error) {
	if cached := s.statisticsFromCache(companyID); cached != nil {
		return cached, nil
	}

	var stats models.CompanyStatistics
	err := s.DB.Where("company_id = ?", companyID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		company, cerr := s.GetCompanyProfile(companyID)
		if cerr != nil {
			return nil, cerr
		}
		if company == nil {
			return nil, apperr.ErrNotFound
		}
		stats = models.CompanyStatistics{CompanyID: companyID}
		if cerr := s.DB.Where("company_id = ?", companyID).FirstOrCreate(&stats).Error; cerr != nil {
			return nil, cerr
		}
	} else if err != nil {
		return nil, err
	}

	s.cacheStatistics(&stats)
	return &stats, nil
}

func (s *Service) statisticsFromCache(companyID uint) *models.CompanyStatistics {
	if s.Redis == nil {
		return nil
	}
	payload, err := s.Redis.Get(s.Ctx, statsCacheKey(companyID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		s.Logger.Warn("statistics cache read failed", zap.Uint("company_id", companyID), zap.Error(err))
		return nil
	}
	var stats models.CompanyStatistics
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *Service) cacheStatistics(stats *models.CompanyStatistics) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, statsCacheKey(stats.CompanyID), payload, statsCacheTTL).Err(); err != nil {
		s.Logger.Warn("statistics cache write failed", zap.Uint("company_id", stats.CompanyID), zap.Error(err))
	}
}

// InvalidateStatisticsCache drops the cached row after a recompute.
func (s *Service) InvalidateStatisticsCache(companyID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(s.Ctx, statsCacheKey(companyID)).Err(); err != nil {
		s.Logger.Warn("statistics cache invalidation failed", zap.Uint("company_id", companyID), zap.Error(err))
	}
}
