package reconcile

import (
	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/infra/store"
)

type UpdatePair struct {
	Reservation reservation.Reservation
	Record      store.Record
	Changed     []string
}

// Plan is the write set that makes a table match the authoritative reservations.
type Plan struct {
	ToCreate  []reservation.Reservation
	ToUpdate  []UpdatePair
	ToDelete  []store.Record
	Unchanged int
}

func (p Plan) IsEmpty() bool {
	return len(p.ToCreate) == 0 && len(p.ToUpdate) == 0 && len(p.ToDelete) == 0
}

// BuildPlan diffs authoritative against current by business key. current is expected newest
// first (as ListAll returns it): when several records share a key the newest is kept and the
// rest are scheduled for deletion. Updates are emitted only when a mapped column changed.
func BuildPlan(authoritative []reservation.Reservation, current []store.Record) Plan {
	wanted := make(map[string]reservation.Reservation, len(authoritative))
	order := make([]string, 0, len(authoritative))
	for _, r := range authoritative {
		key := BusinessKey(r)
		if key == "" {
			continue
		}
		if _, dup := wanted[key]; !dup {
			order = append(order, key)
		}
		wanted[key] = r
	}

	var plan Plan
	existing := make(map[string]store.Record, len(current))
	for _, rec := range current {
		key := RecordKey(rec)
		if _, ok := wanted[key]; !ok {
			plan.ToDelete = append(plan.ToDelete, rec)
			continue
		}
		if _, seen := existing[key]; seen {
			plan.ToDelete = append(plan.ToDelete, rec)
			continue
		}
		existing[key] = rec
	}

	for _, key := range order {
		r := wanted[key]
		rec, ok := existing[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, r)
			continue
		}
		if changed := changedFields(ToFields(r), rec); len(changed) > 0 {
			plan.ToUpdate = append(plan.ToUpdate, UpdatePair{Reservation: r, Record: rec, Changed: changed})
			continue
		}
		plan.Unchanged++
	}

	return plan
}
