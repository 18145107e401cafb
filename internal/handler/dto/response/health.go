package response

import (
	"time"

	"property-revenue-sync/internal/pkg/ttlcache"
	"property-revenue-sync/internal/usecase/reconcile"
)

type CacheStatus struct {
	Key        string     `json:"key"`
	State      string     `json:"state"`
	TTLSeconds float64    `json:"ttl_seconds"`
	FetchedAt  *time.Time `json:"fetched_at,omitempty"`
	AgeSeconds float64    `json:"age_seconds"`
}

type LastSync struct {
	RunID      string    `json:"run_id"`
	FinishedAt time.Time `json:"finished_at"`
	Errors     int       `json:"errors"`
}

type HealthResponse struct {
	Success        bool          `json:"success"`
	Status         string        `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	UptimeSeconds  float64       `json:"uptime_seconds"`
	Caches         []CacheStatus `json:"caches"`
	SyncInProgress bool          `json:"sync_in_progress"`
	LastSync       *LastSync     `json:"last_sync,omitempty"`
}

func FromCacheStatuses(statuses []ttlcache.Status) []CacheStatus {
	out := make([]CacheStatus, len(statuses))
	for i, s := range statuses {
		out[i] = CacheStatus{
			Key:        s.Key,
			State:      string(s.State),
			TTLSeconds: s.TTL.Seconds(),
			FetchedAt:  s.FetchedAt,
			AgeSeconds: s.AgeSecs,
		}
	}
	return out
}

func FromLastRun(r *reconcile.RunResult) *LastSync {
	if r == nil {
		return nil
	}
	return &LastSync{RunID: r.RunID.String(), FinishedAt: r.FinishedAt, Errors: r.Summary.Errors}
}
