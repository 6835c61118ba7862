package ports

import (
	"context"

	"racidash/domain/snapshot"
)

// SnapshotRepository persists parsed datasets for upload history.
// Implementations: postgres (durable) and memory (default when no
// DATABASE_URL is configured).
type SnapshotRepository interface {
	Save(ctx context.Context, snap *snapshot.Snapshot) error
	Get(ctx context.Context, id string) (*snapshot.Snapshot, error)
	Latest(ctx context.Context) (*snapshot.Snapshot, error)
	List(ctx context.Context, limit int) ([]*snapshot.Snapshot, error)
}
