package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"racidash/domain/raci"
	"racidash/domain/snapshot"
	apperrors "racidash/internal/errors"
	"racidash/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id               UUID PRIMARY KEY,
	filename         TEXT NOT NULL,
	sheet            TEXT NOT NULL DEFAULT '',
	role_count       INTEGER NOT NULL DEFAULT 0,
	category_count   INTEGER NOT NULL DEFAULT 0,
	capability_count INTEGER NOT NULL DEFAULT 0,
	dataset          JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// snapshotRepository implements ports.SnapshotRepository on PostgreSQL.
type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates the repository and ensures its schema.
func NewSnapshotRepository(db *sqlx.DB) (ports.SnapshotRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, apperrors.Wrap(err, "failed to ensure snapshots schema")
	}
	return &snapshotRepository{db: db}, nil
}

// Save inserts a snapshot with its full dataset as JSONB.
func (r *snapshotRepository) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	datasetJSON, err := json.Marshal(snap.Dataset)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	query := `INSERT INTO snapshots (
		id, filename, sheet, role_count, category_count, capability_count, dataset, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		snap.ID, snap.Filename, snap.Sheet,
		snap.RoleCount, snap.CategoryCount, snap.CapabilityCount,
		datasetJSON, snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by id, including its dataset.
func (r *snapshotRepository) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	query := `SELECT id, filename, sheet, role_count, category_count, capability_count, dataset, created_at
		FROM snapshots WHERE id = $1`
	return r.scanOne(r.db.QueryRowxContext(ctx, query, id))
}

// Latest returns the most recently saved snapshot.
func (r *snapshotRepository) Latest(ctx context.Context) (*snapshot.Snapshot, error) {
	query := `SELECT id, filename, sheet, role_count, category_count, capability_count, dataset, created_at
		FROM snapshots ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowxContext(ctx, query))
}

func (r *snapshotRepository) scanOne(row *sqlx.Row) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	var datasetJSON []byte

	err := row.Scan(
		&snap.ID, &snap.Filename, &snap.Sheet,
		&snap.RoleCount, &snap.CategoryCount, &snap.CapabilityCount,
		&datasetJSON, &snap.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("snapshot")
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var ds raci.Dataset
	if err := json.Unmarshal(datasetJSON, &ds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	snap.Dataset = &ds
	return &snap, nil
}

// List returns recent snapshot records without their datasets.
func (r *snapshotRepository) List(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, filename, sheet, role_count, category_count, capability_count, created_at
		FROM snapshots ORDER BY created_at DESC LIMIT $1`

	var out []*snapshot.Snapshot
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}
