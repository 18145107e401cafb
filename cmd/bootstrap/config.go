package bootstrap

import (
	"property-revenue-sync/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSections,
)

// ConfigSections exposes the config groups components depend on directly. Tests that supply
// their own config.Config reuse it.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.RevenueConfig { return cfg.Revenue },
	func(cfg config.Config) config.SyncConfig { return cfg.Sync },
	func(cfg config.Config) config.CacheConfig { return cfg.Cache },
)
