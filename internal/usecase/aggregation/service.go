package aggregation

import (
	"context"
	"log/slog"
	"time"

	"property-revenue-sync/internal/domain/revenue"
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/ttlcache"
)

const (
	revenueCacheKey  = "revenue:summary"
	categoryCacheKey = "revenue:categories"
)

type CycleResult struct {
	Summary    revenue.Summary      `json:"summary"`
	Snapshot   UpsertResult         `json:"snapshot"`
	Categories CategoryUpsertResult `json:"categories"`
	// Seeded counts category rows created empty before the cycle ran.
	Seeded int `json:"seeded,omitempty"`
}

// Backings are optional persistent mirrors of the two caches; nil fields disable mirroring.
type Backings struct {
	Revenue    ttlcache.Backing[revenue.Summary]
	Categories ttlcache.Backing[[]revenue.CategoryRevenue]
}

type RevenueUseCase interface {
	GetRevenue(ctx context.Context) ttlcache.Result[revenue.Summary]
	GetCategoryRevenue(ctx context.Context) ttlcache.Result[[]revenue.CategoryRevenue]
	GetDateRange(ctx context.Context, start, end time.Time) (revenue.RangeSummary, error)
	UpdateRevenue(ctx context.Context) (*CycleResult, error)
	PopulateInitial(ctx context.Context) (*CycleResult, error)
	CacheStatus() []ttlcache.Status
}

type revenueUseCaseImpl struct {
	aggregator *Aggregator
	revenue    *ttlcache.Cache[revenue.Summary]
	categories *ttlcache.Cache[[]revenue.CategoryRevenue]
	logger     *slog.Logger
}

func NewRevenueUseCase(aggregator *Aggregator, cfg config.CacheConfig, backings Backings, clk clock.Clock, logger *slog.Logger) RevenueUseCase {
	ttl := cfg.RevenueTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	revenueOpts := []ttlcache.Option[revenue.Summary]{}
	if backings.Revenue != nil {
		revenueOpts = append(revenueOpts, ttlcache.WithBacking(backings.Revenue))
	}
	categoryOpts := []ttlcache.Option[[]revenue.CategoryRevenue]{
		ttlcache.WithDefault(revenue.EmptyBreakdown),
	}
	if backings.Categories != nil {
		categoryOpts = append(categoryOpts, ttlcache.WithBacking(backings.Categories))
	}

	return &revenueUseCaseImpl{
		aggregator: aggregator,
		revenue:    ttlcache.New(revenueCacheKey, ttl, aggregator.ComputeRevenue, clk, logger, revenueOpts...),
		categories: ttlcache.New(categoryCacheKey, ttl, aggregator.CategoryBreakdown, clk, logger, categoryOpts...),
		logger:     logger.With(slog.String("component", "revenue_service")),
	}
}

func (s *revenueUseCaseImpl) GetRevenue(ctx context.Context) ttlcache.Result[revenue.Summary] {
	return s.revenue.Get(ctx)
}

func (s *revenueUseCaseImpl) GetCategoryRevenue(ctx context.Context) ttlcache.Result[[]revenue.CategoryRevenue] {
	return s.categories.Get(ctx)
}

func (s *revenueUseCaseImpl) GetDateRange(ctx context.Context, start, end time.Time) (revenue.RangeSummary, error) {
	return s.aggregator.DateRange(ctx, start, end)
}

// UpdateRevenue recomputes today's figures from the reservation table, upserts the snapshot and
// the category rows, then refreshes both caches. A failed snapshot write does not stop the
// category writes.
func (s *revenueUseCaseImpl) UpdateRevenue(ctx context.Context) (*CycleResult, error) {
	summary, breakdown, err := s.aggregator.ComputeFromReservations(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "compute revenue")
	}
	result := &CycleResult{Summary: summary}

	var failures []error
	snapshot, err := s.aggregator.UpsertTodaySnapshot(ctx, summary)
	if err != nil {
		failures = append(failures, err)
	}
	result.Snapshot = snapshot

	categories, err := s.aggregator.UpsertCategoryRevenue(ctx, breakdown, false)
	if err != nil {
		failures = append(failures, err)
	}
	result.Categories = categories

	s.revenue.Refresh(ctx)
	s.categories.Refresh(ctx)

	s.logger.Info("revenue cycle finished",
		"actual", summary.ActualRevenue,
		"expected", summary.ExpectedRevenue,
		"target_achieved", summary.TargetAchieved,
		"occupancy", summary.Occupancy,
		"snapshot_created", snapshot.Created,
		"category_errors", categories.Errors,
	)

	if len(failures) > 0 {
		return result, errs.Combine(failures...)
	}
	return result, nil
}

// PopulateInitial gives every category a row before running a normal cycle, so a fresh category
// table ends up complete even for categories with no reservations.
func (s *revenueUseCaseImpl) PopulateInitial(ctx context.Context) (*CycleResult, error) {
	seeded, err := s.aggregator.UpsertCategoryRevenue(ctx, revenue.EmptyBreakdown(), true)
	if err != nil {
		return nil, errs.Wrap(err, "seed category rows")
	}
	s.logger.Info("category rows seeded", "created", seeded.Created)

	result, err := s.UpdateRevenue(ctx)
	if result != nil {
		result.Seeded = seeded.Created
	}
	return result, err
}

func (s *revenueUseCaseImpl) CacheStatus() []ttlcache.Status {
	return []ttlcache.Status{s.revenue.Status(), s.categories.Status()}
}
