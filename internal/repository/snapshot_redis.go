package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SnapshotKey is the single Redis key holding the catalog snapshot.
const SnapshotKey = "sanjuan:products:cache"

// RedisSnapshotStore persists the snapshot in Redis so it survives restarts
// and is shared between replicas.
type RedisSnapshotStore struct {
	client *redis.Client
	maxAge time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisSnapshotStore creates a Redis-backed store with the given freshness
// window.
func NewRedisSnapshotStore(client *redis.Client, maxAge time.Duration, logger *zap.Logger) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, maxAge: maxAge, logger: logger, now: time.Now}
}

// Read returns the stored snapshot. Absent keys, entries older than the
// freshness window and entries that fail to unmarshal all surface as
// ErrSnapshotMiss; a corrupt entry is logged but never fatal.
func (s *RedisSnapshotStore) Read(ctx context.Context) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, SnapshotKey).Result()
	if err == redis.Nil {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.Warn("Discarding corrupt catalog snapshot", zap.Error(err))
		return nil, ErrSnapshotMiss
	}

	if s.now().Sub(snap.Timestamp) > s.maxAge {
		return nil, ErrSnapshotMiss
	}

	return &snap, nil
}

// Write replaces the stored snapshot. The key also expires at the freshness
// window so stale entries do not linger in Redis.
func (s *RedisSnapshotStore) Write(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}

	if err := s.client.Set(ctx, SnapshotKey, raw, s.maxAge).Err(); err != nil {
		return fmt.Errorf("failed to write catalog snapshot: %w", err)
	}

	return nil
}

// Clear drops the stored snapshot.
func (s *RedisSnapshotStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, SnapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to clear catalog snapshot: %w", err)
	}
	return nil
}
