package bootstrap

import (
	"context"
	"log/slog"

	"property-revenue-sync/internal/domain/revenue"
	"property-revenue-sync/internal/infra/snapshotstore"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/usecase/aggregation"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewSnapshotBackings,
	),
)

// NewSnapshotBackings mirrors the revenue caches into Redis when REDIS_ADDR is set. Without it
// the caches live in process memory only.
func NewSnapshotBackings(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) aggregation.Backings {
	if !cfg.Redis.Enabled() {
		logger.Info("redis not configured, revenue snapshots kept in memory only")
		return aggregation.Backings{}
	}

	client := snapshotstore.NewClient(context.Background(), cfg.Redis, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return aggregation.Backings{
		Revenue:    snapshotstore.New[revenue.Summary](client, cfg.Redis, logger),
		Categories: snapshotstore.New[[]revenue.CategoryRevenue](client, cfg.Redis, logger),
	}
}
