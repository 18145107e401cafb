package reconcile

import (
	"context"
	"log/slog"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/infra/store"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"
	"property-revenue-sync/internal/usecase/shared"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// FailedItem is one write that did not land. It is retried by the next scheduled run.
type FailedItem struct {
	Op       Operation `json:"op"`
	Key      string    `json:"key"`
	RecordID string    `json:"recordId,omitempty"`
	Error    string    `json:"error"`
}

type Summary struct {
	Created   int          `json:"created"`
	Updated   int          `json:"updated"`
	Deleted   int          `json:"deleted"`
	Unchanged int          `json:"unchanged"`
	Errors    int          `json:"errors"`
	Failed    []FailedItem `json:"failed,omitempty"`
}

func (s *Summary) fail(op Operation, key, recordID string, err error) {
	s.Errors++
	s.Failed = append(s.Failed, FailedItem{Op: op, Key: key, RecordID: recordID, Error: sanitize.Error(err)})
}

// FailedKeys returns the business keys whose writes failed, in the order they failed.
func (s Summary) FailedKeys() []string {
	keys := make([]string, 0, len(s.Failed))
	for _, f := range s.Failed {
		keys = append(keys, f.Key)
	}
	return keys
}

// Reconciler makes one store table match an authoritative reservation set.
type Reconciler struct {
	store  shared.RecordStore
	table  store.TableRef
	logger *slog.Logger
}

func NewReconciler(recordStore shared.RecordStore, table store.TableRef, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:  recordStore,
		table:  table,
		logger: logger.With(slog.String("component", "reconciler")),
	}
}

// Reconcile reads the table, plans the diff and applies it. Only a failed read aborts; write
// failures are isolated per record and reported in the summary.
func (r *Reconciler) Reconcile(ctx context.Context, authoritative []reservation.Reservation) (Summary, error) {
	current, err := r.store.ListAll(ctx, r.table, store.ListOptions{})
	if err != nil {
		return Summary{}, errs.Wrap(err, "read current reservations")
	}

	plan := BuildPlan(authoritative, current)
	r.logger.Info("reconciliation planned",
		"authoritative", len(authoritative),
		"current", len(current),
		"create", len(plan.ToCreate),
		"update", len(plan.ToUpdate),
		"delete", len(plan.ToDelete),
		"unchanged", plan.Unchanged,
	)

	return r.Apply(ctx, plan), nil
}

// Apply executes deletes, then creates, then updates.
func (r *Reconciler) Apply(ctx context.Context, plan Plan) Summary {
	summary := Summary{Unchanged: plan.Unchanged}

	for _, rec := range plan.ToDelete {
		key := RecordKey(rec)
		if err := r.store.Delete(ctx, r.table, rec.ID); err != nil {
			r.logger.Warn("delete failed", "key", key, "record_id", rec.ID, "error", sanitize.Error(err))
			summary.fail(OpDelete, key, rec.ID, err)
			continue
		}
		summary.Deleted++
	}

	for _, res := range plan.ToCreate {
		key := BusinessKey(res)
		if _, err := r.store.Create(ctx, r.table, ToFields(res)); err != nil {
			r.logger.Warn("create failed", "key", key, "error", sanitize.Error(err))
			summary.fail(OpCreate, key, "", err)
			continue
		}
		summary.Created++
	}

	for _, pair := range plan.ToUpdate {
		key := BusinessKey(pair.Reservation)
		if err := r.store.Update(ctx, r.table, pair.Record.ID, ToFields(pair.Reservation)); err != nil {
			r.logger.Warn("update failed", "key", key, "record_id", pair.Record.ID, "error", sanitize.Error(err))
			summary.fail(OpUpdate, key, pair.Record.ID, err)
			continue
		}
		r.logger.Debug("record updated", "key", key, "changed", pair.Changed)
		summary.Updated++
	}

	return summary
}
