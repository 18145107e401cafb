//go:build unit

package aggregation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"property-revenue-sync/internal/domain/revenue"
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/ttlcache"
	"property-revenue-sync/internal/usecase/aggregation"
	"property-revenue-sync/tests/common/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRevenueUseCase(mem *storetest.Memory, clk *clock.MockClock) aggregation.RevenueUseCase {
	agg := aggregation.NewAggregator(mem, tables, config.RevenueConfig{TimeZone: "UTC"}, clk, discardLogger())
	return aggregation.NewRevenueUseCase(agg, config.CacheConfig{RevenueTTL: 5 * time.Minute}, aggregation.Backings{}, clk, discardLogger())
}

func TestRevenueUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("update cycle writes both tables and refreshes the caches", func(t *testing.T) {
		mem := storetest.NewMemory()
		seedReservations(mem)
		clk := clock.NewMockClock(now)
		uc := newRevenueUseCase(mem, clk)

		before := uc.GetRevenue(ctx)
		require.True(t, before.Success)
		assert.Zero(t, before.Value.ActualRevenue)

		result, err := uc.UpdateRevenue(ctx)
		require.NoError(t, err)
		assert.True(t, result.Snapshot.Created)
		assert.Equal(t, 5, result.Categories.Created)

		after := uc.GetRevenue(ctx)
		assert.True(t, after.Cached)
		assert.Equal(t, 300.0, after.Value.ActualRevenue)

		categories := uc.GetCategoryRevenue(ctx)
		assert.Equal(t, 200.0, categories.Value[0].ActualRevenue)

		for _, st := range uc.CacheStatus() {
			assert.Equal(t, ttlcache.StateFresh, st.State, st.Key)
		}
	})

	t.Run("cached revenue is not re-read within the ttl", func(t *testing.T) {
		mem := storetest.NewMemory()
		mem.Seed(tables.Revenue.ID, map[string]string{"Actual Revenue": "10"})
		clk := clock.NewMockClock(now)
		uc := newRevenueUseCase(mem, clk)

		first := uc.GetRevenue(ctx)
		assert.False(t, first.Cached)

		mem.Seed(tables.Revenue.ID, map[string]string{"Actual Revenue": "20"})
		clk.Add(time.Minute)
		assert.Equal(t, 10.0, uc.GetRevenue(ctx).Value.ActualRevenue)

		clk.Add(5 * time.Minute)
		assert.Equal(t, 20.0, uc.GetRevenue(ctx).Value.ActualRevenue)
	})

	t.Run("store outage serves the last good value", func(t *testing.T) {
		mem := storetest.NewMemory()
		mem.Seed(tables.Revenue.ID, map[string]string{"Actual Revenue": "10"})
		clk := clock.NewMockClock(now)
		uc := newRevenueUseCase(mem, clk)
		uc.GetRevenue(ctx)

		mem.ListErr = errors.New("store down")
		clk.Add(10 * time.Minute)
		res := uc.GetRevenue(ctx)
		assert.True(t, res.Success)
		assert.True(t, res.Stale)
		assert.Error(t, res.Err)
		assert.Equal(t, 10.0, res.Value.ActualRevenue)
	})

	t.Run("category cache defaults to an empty breakdown", func(t *testing.T) {
		mem := storetest.NewMemory()
		mem.ListErr = errors.New("store down")
		uc := newRevenueUseCase(mem, clock.NewMockClock(now))

		res := uc.GetCategoryRevenue(ctx)
		assert.False(t, res.Success)
		assert.Equal(t, revenue.EmptyBreakdown(), res.Value)
	})

	t.Run("populate initial seeds every category row", func(t *testing.T) {
		mem := storetest.NewMemory()
		uc := newRevenueUseCase(mem, clock.NewMockClock(now))

		result, err := uc.PopulateInitial(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, result.Seeded)
		assert.Equal(t, 5, result.Categories.Updated)
		assert.Len(t, mem.Records(tables.Categories.ID), 5)
		assert.Len(t, mem.Records(tables.Revenue.ID), 1)
	})
}
