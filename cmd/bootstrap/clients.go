package bootstrap

import (
	"log/slog"

	"property-revenue-sync/internal/infra/source"
	"property-revenue-sync/internal/infra/store"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/usecase/reconcile"
	"property-revenue-sync/internal/usecase/shared"

	"go.uber.org/fx"
)

var ClientsModule = fx.Module("clients",
	fx.Provide(
		fx.Annotate(
			NewSourceClient,
			fx.As(new(reconcile.AuthoritativeSource)),
		),
		fx.Annotate(
			NewStoreClient,
			fx.As(new(shared.RecordStore)),
		),
		NewTables,
	),
)

func NewSourceClient(cfg config.Config, logger *slog.Logger) *source.Client {
	return source.NewClient(cfg.Source, cfg.Revenue, logger)
}

func NewStoreClient(cfg config.Config, logger *slog.Logger) *store.Client {
	return store.NewClient(cfg.Store, logger)
}

// NewTables names the store tables. The snapshot tables only ever take the singular-record create.
func NewTables(cfg config.Config) shared.Tables {
	return shared.Tables{
		Reservations: store.TableRef{ID: cfg.Store.ReservationTableID, Name: "reservations"},
		Revenue: store.TableRef{
			ID:               cfg.Store.RevenueTableID,
			Name:             "revenue",
			CreateStrategies: []store.WriteStrategy{store.CreateSingularRecord, store.CreatePluralRecords},
		},
		Categories: store.TableRef{
			ID:               cfg.Store.CategoryTableID,
			Name:             "categories",
			CreateStrategies: []store.WriteStrategy{store.CreateSingularRecord, store.CreatePluralRecords},
		},
		RevenueDated: cfg.Store.RevenueTableDated,
	}
}
