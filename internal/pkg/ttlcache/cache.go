// Package ttlcache holds one expensive aggregate behind a time-bounded, single-flight cache.
package ttlcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/pkg/sanitize"

	"golang.org/x/sync/singleflight"
)

type State string

const (
	StateEmpty      State = "empty"
	StateFresh      State = "fresh"
	StateStale      State = "stale"
	StateRefreshing State = "refreshing"
)

// Fetcher computes the cached value.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Backing persists the last good value across restarts. It is read once, before the first
// fetch, and written after every successful one.
type Backing[T any] interface {
	Load(ctx context.Context, key string) (value T, fetchedAt time.Time, found bool, err error)
	Save(ctx context.Context, key string, value T, fetchedAt time.Time) error
}

// Result is what callers see. Cached is false only for a value fetched by this call's flight.
// Err carries a refresh failure that was absorbed by serving the previous value.
type Result[T any] struct {
	Value     T
	Cached    bool
	Stale     bool
	Success   bool
	Err       error
	FetchedAt time.Time
	Age       time.Duration
}

type Status struct {
	Key       string        `json:"key"`
	State     State         `json:"state"`
	TTL       time.Duration `json:"ttl"`
	FetchedAt *time.Time    `json:"fetchedAt,omitempty"`
	AgeSecs   float64       `json:"ageSeconds"`
}

type Option[T any] func(*Cache[T])

func WithBacking[T any](b Backing[T]) Option[T] {
	return func(c *Cache[T]) { c.backing = b }
}

// WithDefault sets the value returned when a fetch fails and nothing was ever cached.
func WithDefault[T any](fn func() T) Option[T] {
	return func(c *Cache[T]) { c.zero = fn }
}

type Cache[T any] struct {
	key     string
	ttl     time.Duration
	fetch   Fetcher[T]
	clock   clock.Clock
	logger  *slog.Logger
	backing Backing[T]
	zero    func() T
	group   singleflight.Group

	mu         sync.Mutex
	value      T
	hasValue   bool
	fetchedAt  time.Time
	refreshing bool
	expired    bool
	seeded     bool
}

func New[T any](key string, ttl time.Duration, fetch Fetcher[T], clk clock.Clock, logger *slog.Logger, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		key:    key,
		ttl:    ttl,
		fetch:  fetch,
		clock:  clk,
		logger: logger.With(slog.String("component", "ttlcache"), slog.String("cache_key", key)),
		zero:   func() T { var zero T; return zero },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value while it is younger than the TTL. An expired value is refreshed
// through a single flight; callers arriving while that flight runs get the previous value
// tagged stale instead of waiting.
func (c *Cache[T]) Get(ctx context.Context) Result[T] {
	c.seed(ctx)

	c.mu.Lock()
	now := c.clock.Now()
	if c.hasValue && c.isFresh(now) {
		res := c.cachedLocked(now, false)
		c.mu.Unlock()
		return res
	}
	if c.refreshing && c.hasValue {
		res := c.cachedLocked(now, true)
		c.mu.Unlock()
		return res
	}
	c.mu.Unlock()

	return c.refresh(ctx, false)
}

// Refresh ignores the TTL. It still joins a flight that is already running.
func (c *Cache[T]) Refresh(ctx context.Context) Result[T] {
	c.seed(ctx)
	return c.refresh(ctx, true)
}

// Invalidate expires the current value without dropping it, so it can still be served stale.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expired = true
}

func (c *Cache[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{Key: c.key, TTL: c.ttl, State: StateEmpty}
	now := c.clock.Now()
	switch {
	case c.refreshing:
		st.State = StateRefreshing
	case !c.hasValue:
		st.State = StateEmpty
	case c.isFresh(now):
		st.State = StateFresh
	default:
		st.State = StateStale
	}
	if c.hasValue && !c.fetchedAt.IsZero() {
		at := c.fetchedAt
		st.FetchedAt = &at
		st.AgeSecs = now.Sub(at).Seconds()
	}
	return st
}

func (c *Cache[T]) refresh(ctx context.Context, force bool) Result[T] {
	ch := c.group.DoChan(c.key, func() (any, error) {
		return c.load(ctx, force), nil
	})

	select {
	case r := <-ch:
		return r.Val.(Result[T])
	case <-ctx.Done():
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.hasValue {
			res := c.cachedLocked(c.clock.Now(), true)
			res.Err = ctx.Err()
			return res
		}
		return Result[T]{Value: c.zero(), Err: ctx.Err()}
	}
}

// load runs inside the flight. The caller that started the flight may go away; the fetch
// outlives it so the joined callers still get a value.
func (c *Cache[T]) load(ctx context.Context, force bool) Result[T] {
	c.mu.Lock()
	now := c.clock.Now()
	if !force && c.hasValue && c.isFresh(now) {
		res := c.cachedLocked(now, false)
		c.mu.Unlock()
		return res
	}
	c.refreshing = true
	c.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	value, err := c.fetch(fetchCtx)

	c.mu.Lock()
	c.refreshing = false
	now = c.clock.Now()
	if err != nil {
		c.logger.Warn("cache refresh failed", "has_previous", c.hasValue, "error", sanitize.Error(err))
		if c.hasValue {
			res := c.cachedLocked(now, true)
			res.Err = err
			c.mu.Unlock()
			return res
		}
		c.mu.Unlock()
		return Result[T]{Value: c.zero(), Err: err}
	}

	c.value = value
	c.hasValue = true
	c.fetchedAt = now
	c.expired = false
	c.mu.Unlock()

	if c.backing != nil {
		if saveErr := c.backing.Save(fetchCtx, c.key, value, now); saveErr != nil {
			c.logger.Warn("cache backing save failed", "error", sanitize.Error(saveErr))
		}
	}

	return Result[T]{Value: value, Success: true, FetchedAt: now}
}

// seed loads the backing value once. A seeded value keeps its original timestamp, so an old
// one is treated as stale but can still be served if the first fetch fails.
func (c *Cache[T]) seed(ctx context.Context) {
	c.mu.Lock()
	if c.seeded || c.backing == nil {
		c.seeded = true
		c.mu.Unlock()
		return
	}
	c.seeded = true
	c.mu.Unlock()

	value, fetchedAt, found, err := c.backing.Load(ctx, c.key)
	if err != nil {
		c.logger.Warn("cache backing load failed", "error", sanitize.Error(err))
		return
	}
	if !found {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasValue {
		return
	}
	c.value = value
	c.hasValue = true
	c.fetchedAt = fetchedAt
	c.logger.Debug("cache seeded from backing", "fetched_at", fetchedAt)
}

func (c *Cache[T]) isFresh(now time.Time) bool {
	return !c.expired && !c.fetchedAt.IsZero() && now.Sub(c.fetchedAt) < c.ttl
}

func (c *Cache[T]) cachedLocked(now time.Time, stale bool) Result[T] {
	return Result[T]{
		Value:     c.value,
		Cached:    true,
		Stale:     stale,
		Success:   true,
		FetchedAt: c.fetchedAt,
		Age:       now.Sub(c.fetchedAt),
	}
}
