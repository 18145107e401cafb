package shared

import (
	"context"

	"property-revenue-sync/internal/infra/store"
)

// RecordStore is the subset of the store client the usecases depend on.
type RecordStore interface {
	ListAll(ctx context.Context, table store.TableRef, opts store.ListOptions) ([]store.Record, error)
	Create(ctx context.Context, table store.TableRef, fields map[string]string) (store.Record, error)
	Update(ctx context.Context, table store.TableRef, id string, fields map[string]string) error
	Delete(ctx context.Context, table store.TableRef, id string) error
}

// Tables groups the store tables the service reads and writes.
type Tables struct {
	Reservations store.TableRef
	Revenue      store.TableRef
	Categories   store.TableRef
	// RevenueDated is false for revenue tables without a date column; their single
	// latest row is the snapshot.
	RevenueDated bool
}
