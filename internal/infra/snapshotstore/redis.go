// Package snapshotstore keeps the last computed aggregates in Redis so a restarted process can
// serve them before its first successful refresh.
package snapshotstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"property-revenue-sync/internal/infra"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

type envelope[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Store is a ttlcache.Backing over a Redis client.
type Store[T any] struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
	logger    *slog.Logger
}

func New[T any](client redis.Cmdable, cfg config.RedisConfig, logger *slog.Logger) *Store[T] {
	return &Store[T]{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.SnapshotTTL,
		logger:    logger.With(slog.String("component", "snapshot_store")),
	}
}

func (s *Store[T]) Load(ctx context.Context, key string) (T, time.Time, bool, error) {
	var zero T
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, time.Time{}, false, nil
	}
	if err != nil {
		return zero, time.Time{}, false, infra.NewTransportError("redis get "+key, err)
	}

	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		// a snapshot written by an older build is ignored, not fatal
		s.logger.Warn("discarding undecodable snapshot", "key", key, "error", err)
		return zero, time.Time{}, false, nil
	}
	return env.Value, env.FetchedAt, true, nil
}

func (s *Store[T]) Save(ctx context.Context, key string, value T, fetchedAt time.Time) error {
	raw, err := json.Marshal(envelope[T]{Value: value, FetchedAt: fetchedAt})
	if err != nil {
		return errs.Wrapf(err, "encode snapshot %s", key)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return infra.NewTransportError("redis set "+key, err)
	}
	return nil
}

// NewClient opens the Redis connection and pings it once. An unreachable server is logged; the
// snapshots are an optimisation and the process runs without them.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis not reachable, snapshots will be retried per call", "addr", cfg.Addr, "error", err)
	} else {
		logger.Info("connected to redis", "addr", cfg.Addr)
	}
	return client
}
