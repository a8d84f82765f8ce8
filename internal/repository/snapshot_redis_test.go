package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newRedisStore(t *testing.T, maxAge time.Duration) (*RedisSnapshotStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSnapshotStore(client, maxAge, zap.NewNop()), mr
}

func TestRedisSnapshotStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 30*time.Minute)

	if _, err := store.Read(ctx); err != ErrSnapshotMiss {
		t.Fatalf("Read on empty store = %v, want ErrSnapshotMiss", err)
	}

	snap := sampleSnapshot(time.Now())
	if err := store.Write(ctx, snap); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(got.Products) != 2 || got.Products[1].Name != "Cemento" || got.Source != "apps-script" {
		t.Errorf("unexpected snapshot %+v", got)
	}
}

func TestRedisSnapshotStore_ExpiryByTimestamp(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 30*time.Minute)

	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Write(ctx, sampleSnapshot(now)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	store.now = func() time.Time { return now.Add(31 * time.Minute) }
	if _, err := store.Read(ctx); err != ErrSnapshotMiss {
		t.Errorf("Read past the window = %v, want ErrSnapshotMiss", err)
	}
}

func TestRedisSnapshotStore_CorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, 30*time.Minute)

	mr.Set(SnapshotKey, "{not valid json")

	if _, err := store.Read(ctx); err != ErrSnapshotMiss {
		t.Errorf("Read of corrupt entry = %v, want ErrSnapshotMiss", err)
	}
}

func TestRedisSnapshotStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 30*time.Minute)

	store.Write(ctx, sampleSnapshot(time.Now()))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := store.Read(ctx); err != ErrSnapshotMiss {
		t.Errorf("Read after Clear = %v, want ErrSnapshotMiss", err)
	}
}
