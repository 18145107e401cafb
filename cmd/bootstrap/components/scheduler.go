package components

import (
	"context"
	"log/slog"

	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/usecase/aggregation"
	"property-revenue-sync/internal/usecase/reconcile"
	"property-revenue-sync/internal/usecase/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(registerScheduler),
)

func NewScheduler(cfg config.Config, syncUseCase reconcile.SyncUseCase, revenueUseCase aggregation.RevenueUseCase, logger *slog.Logger) *scheduler.Runner {
	return scheduler.NewRunner(logger,
		scheduler.Job{
			Name:       "reservation-sync",
			Interval:   cfg.Scheduler.SyncInterval,
			RunOnStart: cfg.Scheduler.RunOnStart,
			Run: func(ctx context.Context) error {
				_, err := syncUseCase.Run(ctx)
				// a manual run got there first
				if errs.Is(err, errs.ErrSyncInProgress) {
					return nil
				}
				return err
			},
		},
		scheduler.Job{
			Name:       "revenue-snapshot",
			Interval:   cfg.Scheduler.RevenueInterval,
			RunOnStart: cfg.Scheduler.RunOnStart,
			Run: func(ctx context.Context) error {
				_, err := revenueUseCase.UpdateRevenue(ctx)
				return err
			},
		},
	)
}

func registerScheduler(lc fx.Lifecycle, cfg config.Config, runner *scheduler.Runner, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("scheduler disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return runner.Stop(ctx)
		},
	})
}
