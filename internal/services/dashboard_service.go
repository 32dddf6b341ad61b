package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

const (
	statsKey  = cache.DashboardPrefix + "stats"
	chartsKey = cache.DashboardPrefix + "charts"

	trendMonths          = 12
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

type DashboardService struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewDashboardService(s store.Store, c cache.Cache, ttl time.Duration) *DashboardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &DashboardService{store: s, cache: c, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// cached serves key from the cache, computing and storing it on a miss.
// Cache failures are logged and fall through to the store.
func cached[T any](ctx context.Context, s *DashboardService, key string, compute func() (T, error)) (T, error) {
	var v T
	if hit, err := s.cache.Get(ctx, key, &v); err != nil {
		slog.Warn("dashboard cache read failed", "key", key, "error", err)
	} else if hit {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		slog.Warn("dashboard cache write failed", "key", key, "error", err)
	}
	return v, nil
}

func (s *DashboardService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	counts, err := cached(ctx, s, statsKey, func() (store.Counts, error) {
		return s.store.Aggregates().Counts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// Charts returns the crime type distribution across criminal records and a
// zero-filled filing trend for the last twelve months including the current
// one.
func (s *DashboardService) Charts(ctx context.Context) (*dto.ChartsResponse, error) {
	charts, err := cached(ctx, s, chartsKey, func() (dto.ChartsResponse, error) {
		types, err := s.store.Aggregates().CrimeTypeCounts(ctx)
		if err != nil {
			return dto.ChartsResponse{}, err
		}
		months := trendWindow(s.now(), trendMonths)
		filed, err := s.store.Aggregates().MonthlyFilings(ctx, months[0])
		if err != nil {
			return dto.ChartsResponse{}, err
		}
		return dto.ChartsResponse{CrimeTypes: types, MonthlyTrend: zeroFill(months, filed)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &charts, nil
}

func (s *DashboardService) Activities(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	limit = min(limit, maxActivityLimit)
	return s.store.Activities().List(ctx, limit)
}

// trendWindow lists n YYYY-MM labels ending with the month of now.
func trendWindow(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	out := make([]string, n)
	for i := range out {
		out[i] = first.AddDate(0, i, 0).Format("2006-01")
	}
	return out
}

func zeroFill(months []string, buckets []store.Bucket) []store.Bucket {
	totals := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		totals[b.Label] = b.Total
	}
	out := make([]store.Bucket, len(months))
	for i, m := range months {
		out[i] = store.Bucket{Label: m, Total: totals[m]}
	}
	return out
}
