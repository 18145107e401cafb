package components

import (
	"property-revenue-sync/internal/handler"
	"property-revenue-sync/internal/handler/api"
	"property-revenue-sync/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHealthHandler,
		api.NewRevenueHandler,
		api.NewSyncHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
