package snapshot

import (
	"time"

	"racidash/domain/raci"
)

// Snapshot is one persisted parse result: an upload-history entry plus the
// full dataset it produced.
type Snapshot struct {
	ID              string        `db:"id" json:"id"`
	Filename        string        `db:"filename" json:"filename"`
	Sheet           string        `db:"sheet" json:"sheet"`
	RoleCount       int           `db:"role_count" json:"role_count"`
	CategoryCount   int           `db:"category_count" json:"category_count"`
	CapabilityCount int           `db:"capability_count" json:"capability_count"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	Dataset         *raci.Dataset `db:"-" json:"dataset,omitempty"`
}

// FromDataset builds a snapshot record for a freshly parsed dataset.
func FromDataset(id string, ds *raci.Dataset) *Snapshot {
	return &Snapshot{
		ID:              id,
		Filename:        ds.Meta.Filename,
		Sheet:           ds.Meta.Sheet,
		RoleCount:       ds.Meta.RoleCount,
		CategoryCount:   ds.Meta.CategoryCount,
		CapabilityCount: ds.Meta.CapabilityCount,
		CreatedAt:       time.Now().UTC(),
		Dataset:         ds,
	}
}
