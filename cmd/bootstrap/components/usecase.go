package components

import (
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/usecase/aggregation"
	"property-revenue-sync/internal/usecase/reconcile"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseSyncModule,
	usecaseRevenueModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseSyncModule = fx.Module("usecase/reconcile",
	fx.Provide(
		reconcile.NewSyncUseCase,
	),
)

var usecaseRevenueModule = fx.Module("usecase/aggregation",
	fx.Provide(
		aggregation.NewAggregator,
		aggregation.NewRevenueUseCase,
	),
)
