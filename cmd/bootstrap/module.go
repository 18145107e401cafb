package bootstrap

import (
	"property-revenue-sync/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	ClientsModule,
	RedisModule,
	components.UseCaseModule,
	components.SchedulerModule,
	components.HandlerModule,
)
