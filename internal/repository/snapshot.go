package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"sanjuan-construye/internal/domain"
)

// ErrSnapshotMiss is returned when no fresh snapshot is stored. Absent,
// expired and corrupt entries all surface as a miss.
var ErrSnapshotMiss = errors.New("no fresh catalog snapshot")

// Snapshot is the persisted result of one successful ingestion run.
type Snapshot struct {
	Products  []domain.Product `json:"products"`
	Timestamp time.Time        `json:"timestamp"`
	Source    string           `json:"source"`
}

// SnapshotStore is a single-slot store for the last good catalog. Writes
// always overwrite the previous entry.
type SnapshotStore interface {
	Read(ctx context.Context) (*Snapshot, error)
	Write(ctx context.Context, snap *Snapshot) error
	Clear(ctx context.Context) error
}

// MemorySnapshotStore keeps the snapshot in process memory. It backs tests
// and deployments without Redis.
type MemorySnapshotStore struct {
	mu     sync.RWMutex
	snap   *Snapshot
	maxAge time.Duration
	now    func() time.Time
}

// NewMemorySnapshotStore creates an in-memory store with the given freshness
// window.
func NewMemorySnapshotStore(maxAge time.Duration) *MemorySnapshotStore {
	return &MemorySnapshotStore{maxAge: maxAge, now: time.Now}
}

// Read returns the stored snapshot, or ErrSnapshotMiss if none is stored or
// the entry is older than the freshness window.
func (s *MemorySnapshotStore) Read(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil || s.now().Sub(s.snap.Timestamp) > s.maxAge {
		return nil, ErrSnapshotMiss
	}

	out := *s.snap
	out.Products = append([]domain.Product(nil), s.snap.Products...)
	return &out, nil
}

// Write replaces the stored snapshot.
func (s *MemorySnapshotStore) Write(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *snap
	stored.Products = append([]domain.Product(nil), snap.Products...)
	s.snap = &stored
	return nil
}

// Clear drops the stored snapshot.
func (s *MemorySnapshotStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = nil
	return nil
}
