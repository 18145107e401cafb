package response

import (
	"time"

	"property-revenue-sync/internal/usecase/reconcile"
)

type FailedWrite struct {
	Op       string `json:"op"`
	Key      string `json:"key"`
	RecordID string `json:"record_id,omitempty"`
	Error    string `json:"error"`
}

type SyncRun struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	DurationMS int64         `json:"duration_ms"`
	Fetched    int           `json:"fetched"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Deleted    int           `json:"deleted"`
	Unchanged  int           `json:"unchanged"`
	Errors     int           `json:"errors"`
	FailedKeys []string      `json:"failed_keys"`
	Failed     []FailedWrite `json:"failed,omitempty"`
}

type SyncResponse struct {
	Success bool    `json:"success"`
	Data    SyncRun `json:"data"`
}

// FromRunResult reports a finished run. Individual write failures do not fail the run.
func FromRunResult(r *reconcile.RunResult) *SyncResponse {
	failed := make([]FailedWrite, len(r.Summary.Failed))
	for i, f := range r.Summary.Failed {
		failed[i] = FailedWrite{Op: string(f.Op), Key: f.Key, RecordID: f.RecordID, Error: f.Error}
	}
	return &SyncResponse{
		Success: true,
		Data: SyncRun{
			RunID:      r.RunID.String(),
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
			DurationMS: r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
			Fetched:    r.Fetched,
			Created:    r.Summary.Created,
			Updated:    r.Summary.Updated,
			Deleted:    r.Summary.Deleted,
			Unchanged:  r.Summary.Unchanged,
			Errors:     r.Summary.Errors,
			FailedKeys: r.Summary.FailedKeys(),
			Failed:     failed,
		},
	}
}
