//go:build e2e

package snapshotstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"property-revenue-sync/internal/domain/revenue"
	"property-revenue-sync/internal/infra/snapshotstore"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/tests/common/redistest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*snapshotstore.Store[revenue.Summary], *redis.Client, config.RedisConfig) {
	t.Helper()

	cfg := config.RedisConfig{
		Addr:        redistest.StartOnce(t),
		KeyPrefix:   "test-" + uuid.NewString() + ":",
		SnapshotTTL: time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := snapshotstore.NewClient(context.Background(), cfg, logger)
	t.Cleanup(func() { _ = client.Close() })

	return snapshotstore.New[revenue.Summary](client, cfg, logger), client, cfg
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st, client, cfg := newStore(t)

	want := revenue.Summary{
		ActualRevenue:   1000,
		ExpectedRevenue: 1520.5,
		TargetAchieved:  65.77,
		Occupancy:       50,
		Reservations:    4,
		Date:            time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	fetchedAt := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)

	require.NoError(t, st.Save(ctx, "revenue", want, fetchedAt))

	got, at, found, err := st.Load(ctx, "revenue")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, at.Equal(fetchedAt))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	ttl, err := client.TTL(ctx, cfg.KeyPrefix+"revenue").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestStore_Missing(t *testing.T) {
	st, _, _ := newStore(t)

	_, at, found, err := st.Load(context.Background(), "never-written")
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, at.IsZero())
}

func TestStore_UndecodableSnapshotIgnored(t *testing.T) {
	ctx := context.Background()
	st, client, cfg := newStore(t)

	require.NoError(t, client.Set(ctx, cfg.KeyPrefix+"revenue", "{not json", time.Minute).Err())

	_, _, found, err := st.Load(ctx, "revenue")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_UnreachableServer(t *testing.T) {
	cfg := config.RedisConfig{Addr: "127.0.0.1:1", KeyPrefix: "x:"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := snapshotstore.NewClient(context.Background(), cfg, logger)
	t.Cleanup(func() { _ = client.Close() })

	st := snapshotstore.New[revenue.Summary](client, cfg, logger)
	err := st.Save(context.Background(), "revenue", revenue.Summary{}, time.Now())
	require.Error(t, err)
}
