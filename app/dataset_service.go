package app

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"racidash/adapters/source"
	"racidash/domain/raci"
	"racidash/domain/snapshot"
	"racidash/internal"
	apperrors "racidash/internal/errors"
	"racidash/ports"
)

// DatasetService owns the currently loaded dataset, runs the parse path for
// files and uploads, records snapshots, and applies the interactive cell and
// maturity edits coming from the dashboard.
type DatasetService struct {
	mu      sync.RWMutex
	current *raci.Dataset
	repo    ports.SnapshotRepository
	logger  *internal.Logger
}

// NewDatasetService creates the service. repo may not be nil; use the
// memory adapter when persistence is not configured.
func NewDatasetService(repo ports.SnapshotRepository) *DatasetService {
	return &DatasetService{
		repo:   repo,
		logger: internal.NewDefaultLogger(),
	}
}

// Current returns a copy of the active dataset, or nil when nothing is
// loaded. A copy keeps serialization and export off the lock that guards
// the live dataset against concurrent edits.
func (s *DatasetService) Current() *raci.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// LoadFile parses a spreadsheet from disk and makes it the active dataset.
func (s *DatasetService) LoadFile(ctx context.Context, path, sheetHint string) (*raci.Dataset, error) {
	grid, sheet, err := source.NewReader(path).Load(sheetHint)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, grid, filepath.Base(path), sheet)
}

// LoadBytes parses uploaded file content and makes it the active dataset.
func (s *DatasetService) LoadBytes(ctx context.Context, data []byte, filename, sheetHint string) (*raci.Dataset, error) {
	grid, sheet, err := source.FromBytes(data, filename, sheetHint)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, grid, filepath.Base(filename), sheet)
}

func (s *DatasetService) adopt(ctx context.Context, grid *raci.Grid, filename, sheet string) (*raci.Dataset, error) {
	ds, err := raci.Parse(grid, raci.Options{Filename: filename, Sheet: sheet})
	if err != nil {
		return nil, err
	}

	// The copy feeds the snapshot and the caller; the stored original is
	// only ever touched under the lock after this point.
	out := ds.Clone()

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	snap := snapshot.FromDataset(uuid.NewString(), out)
	if err := s.repo.Save(ctx, snap); err != nil {
		// History is best-effort; the parse result stands either way.
		s.logger.Warn("[DatasetService] failed to save snapshot: %v", err)
	}
	s.logger.Info("[DatasetService] loaded %q (sheet %q): %d roles, %d categories, %d capabilities",
		filename, sheet, out.Meta.RoleCount, out.Meta.CategoryCount, out.Meta.CapabilityCount)
	return out, nil
}

// UpdateCell sets or clears one role assignment on a capability. An empty
// value clears the assignment; anything else must be a canonical letter.
func (s *DatasetService) UpdateCell(category, capability, roleID, value string) error {
	if value != "" && value != "R" && value != "A" && value != "C" && value != "I" {
		return apperrors.InvalidInput("value must be R, A, C, I or empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return apperrors.NotFound("dataset")
	}
	item := s.current.FindCapability(category, capability)
	if item == nil {
		return apperrors.NotFound("capability")
	}
	if value == "" {
		delete(item.Assignments, roleID)
	} else {
		item.Assignments[roleID] = value
	}
	return nil
}

// UpdateMaturity sets a now or tgt score on a capability.
func (s *DatasetService) UpdateMaturity(category, capability, field string, value int) error {
	if field != "now" && field != "tgt" {
		return apperrors.InvalidInput("field must be now or tgt")
	}
	if value < 0 || value > 5 {
		return apperrors.InvalidInput("value must be between 0 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return apperrors.NotFound("dataset")
	}
	item := s.current.FindCapability(category, capability)
	if item == nil {
		return apperrors.NotFound("capability")
	}
	v := value
	if field == "now" {
		item.Now = &v
	} else {
		item.Target = &v
	}
	s.current.Meta.HasMaturity = true
	return nil
}

// History lists recent snapshots, newest first.
func (s *DatasetService) History(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	return s.repo.List(ctx, limit)
}
