package memory

import (
	"context"
	"sync"

	"racidash/domain/snapshot"
	apperrors "racidash/internal/errors"
	"racidash/ports"
)

// snapshotRepository keeps upload history in process memory. Used when no
// database is configured; everything is lost on restart.
type snapshotRepository struct {
	mu    sync.RWMutex
	snaps []*snapshot.Snapshot
}

// NewSnapshotRepository creates an in-memory snapshot store.
func NewSnapshotRepository() ports.SnapshotRepository {
	return &snapshotRepository{}
}

func (r *snapshotRepository) Save(_ context.Context, snap *snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *snapshotRepository) Get(_ context.Context, id string) (*snapshot.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("snapshot")
}

func (r *snapshotRepository) Latest(_ context.Context) (*snapshot.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.snaps) == 0 {
		return nil, apperrors.NotFound("snapshot")
	}
	return r.snaps[len(r.snaps)-1], nil
}

func (r *snapshotRepository) List(_ context.Context, limit int) ([]*snapshot.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.snaps) {
		limit = len(r.snaps)
	}
	out := make([]*snapshot.Snapshot, 0, limit)
	for i := len(r.snaps) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.snaps[i]
		out = append(out, &snapshot.Snapshot{
			ID: s.ID, Filename: s.Filename, Sheet: s.Sheet,
			RoleCount: s.RoleCount, CategoryCount: s.CategoryCount,
			CapabilityCount: s.CapabilityCount, CreatedAt: s.CreatedAt,
		})
	}
	return out, nil
}
