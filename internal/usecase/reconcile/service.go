package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"
	"property-revenue-sync/internal/usecase/shared"

	"github.com/google/uuid"
)

// AuthoritativeSource produces the current-truth reservation set for a sync run.
type AuthoritativeSource interface {
	FetchAuthoritative(ctx context.Context, now time.Time, windowDays int) ([]reservation.Reservation, error)
}

type RunResult struct {
	RunID      uuid.UUID `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Fetched    int       `json:"fetched"`
	Summary    Summary   `json:"summary"`
}

type SyncUseCase interface {
	Run(ctx context.Context) (*RunResult, error)
	LastRun() *RunResult
	InProgress() bool
}

type syncUseCaseImpl struct {
	source     AuthoritativeSource
	reconciler *Reconciler
	windowDays int
	clock      clock.Clock
	logger     *slog.Logger

	running atomic.Bool
	mu      sync.RWMutex
	last    *RunResult
}

func NewSyncUseCase(
	source AuthoritativeSource,
	recordStore shared.RecordStore,
	tables shared.Tables,
	cfg config.SyncConfig,
	clk clock.Clock,
	logger *slog.Logger,
) SyncUseCase {
	window := cfg.RecentWindowDays
	if window <= 0 {
		window = reservation.DefaultRecentWindowDays
	}
	return &syncUseCaseImpl{
		source:     source,
		reconciler: NewReconciler(recordStore, tables.Reservations, logger),
		windowDays: window,
		clock:      clk,
		logger:     logger.With(slog.String("component", "reservation_sync")),
	}
}

// Run fetches the authoritative set and reconciles the reservation table against it. A fetch
// failure leaves the table untouched. Overlapping runs are rejected with ErrSyncInProgress.
func (s *syncUseCaseImpl) Run(ctx context.Context) (*RunResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, errs.ErrSyncInProgress
	}
	defer s.running.Store(false)

	result := &RunResult{RunID: uuid.New(), StartedAt: s.clock.Now()}
	logger := s.logger.With(slog.String("run_id", result.RunID.String()))
	logger.Info("reservation sync started", "window_days", s.windowDays)

	authoritative, err := s.source.FetchAuthoritative(ctx, result.StartedAt, s.windowDays)
	if err != nil {
		logger.Error("reservation sync aborted, store left unchanged", "error", sanitize.Error(err))
		return nil, errs.Wrap(err, "fetch authoritative reservations")
	}
	result.Fetched = len(authoritative)

	summary, err := s.reconciler.Reconcile(ctx, authoritative)
	if err != nil {
		logger.Error("reservation sync aborted", "error", sanitize.Error(err))
		return nil, err
	}
	result.Summary = summary
	result.FinishedAt = s.clock.Now()

	logger.Info("reservation sync finished",
		"created", summary.Created,
		"updated", summary.Updated,
		"deleted", summary.Deleted,
		"unchanged", summary.Unchanged,
		"errors", summary.Errors,
		"duration", result.FinishedAt.Sub(result.StartedAt),
	)
	if summary.Errors > 0 {
		logger.Warn("reservation sync left failed keys for the next run", "keys", summary.FailedKeys())
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()
	return result, nil
}

func (s *syncUseCaseImpl) LastRun() *RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *syncUseCaseImpl) InProgress() bool {
	return s.running.Load()
}
