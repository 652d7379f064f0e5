// backend/src/services/dashboard_service.go
package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
	"github.com/username/wealthtrack/backend/src/processors"
)

const (
	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute
)

// dashboardService assembles the read-path view models. The per-user entry
// list is cached; every write path and sync invalidates it, so a stale read
// only survives until the cache TTL in the worst case.
type dashboardService struct {
	db      *sql.DB
	cache   *cache.Cache
	metrics *processors.MetricsProcessor
	cards   *processors.CardProcessor
}

func NewDashboardService(db *sql.DB, c *cache.Cache) DashboardService {
	return &dashboardService{
		db:      db,
		cache:   c,
		metrics: processors.NewMetricsProcessor(),
		cards:   processors.NewCardProcessor(),
	}
}

func entriesCacheKey(userID string) string {
	return "networth_entries_" + userID
}

func (s *dashboardService) entries(userID string) ([]models.NetWorthEntry, error) {
	if cached, found := s.cache.Get(entriesCacheKey(userID)); found {
		if entries, ok := cached.([]models.NetWorthEntry); ok {
			return entries, nil
		}
	}
	entries, err := model.ListNetWorthEntries(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("listing net worth entries: %w", err)
	}
	s.cache.Set(entriesCacheKey(userID), entries, cache.DefaultExpiration)
	return entries, nil
}

func (s *dashboardService) InvalidateUserCache(userID string) {
	s.cache.Delete(entriesCacheKey(userID))
}

// GetDashboard applies the display filter (preset wins over explicit bounds),
// then computes headline figures and chart series from the filtered set.
// Growth metrics always run over the full history.
func (s *dashboardService) GetDashboard(userID, preset, from, to, chartRange string, now time.Time) (*models.DashboardSummary, error) {
	all, err := s.entries(userID)
	if err != nil {
		return nil, err
	}

	if preset != "" {
		from, to = s.metrics.PresetRange(preset, now)
	}
	filtered := s.metrics.FilterByRange(all, from, to)

	latest, previous, change, changePercent := s.metrics.LatestPrevious(filtered)
	chart := s.metrics.ChartSeries(filtered, chartRange, now)

	return &models.DashboardSummary{
		Latest:               latest,
		Previous:             previous,
		MonthlyChange:        change,
		MonthlyChangePercent: changePercent,
		Growth:               s.metrics.ComputeGrowth(all, now),
		Chart:                chart,
		Allocation:           s.metrics.AllocationSnapshot(latest),
		AllocationOverTime:   s.metrics.AllocationOverTime(chart),
		EntryCount:           len(filtered),
	}, nil
}

func (s *dashboardService) GetCardStatuses(userID string, now time.Time) ([]models.CardStatus, error) {
	cards, err := model.ListCreditCards(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("listing credit cards: %w", err)
	}
	return s.cards.EvaluateAll(cards, now), nil
}
