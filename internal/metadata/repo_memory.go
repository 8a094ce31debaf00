package metadata

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu        sync.RWMutex
	nextID    int64
	snapshots []Snapshot
	drafts    []DraftReport
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// Supersede deactivates every active snapshot of the trámite and inserts
// snap as the new active one, returning its id.
func (r *MemoryRepo) Supersede(ctx context.Context, snap Snapshot) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.snapshots {
		if r.snapshots[i].TramiteID == snap.TramiteID {
			r.snapshots[i].Active = false
		}
	}
	snap.ID = r.nextID
	r.nextID++
	snap.Active = true
	snap.CreatedAt = time.Now().UTC()
	r.snapshots = append(r.snapshots, snap)
	return snap.ID, nil
}

// SupersedeDraftReport deactivates prior auxiliary rows for the
// (trámite, file type) pair and inserts item as the new active one.
func (r *MemoryRepo) SupersedeDraftReport(ctx context.Context, item DraftReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.drafts {
		if r.drafts[i].TramiteID == item.TramiteID && r.drafts[i].FileTypeID == item.FileTypeID {
			r.drafts[i].Active = false
		}
	}
	item.ID = r.nextID
	r.nextID++
	item.Active = true
	item.CreatedAt = time.Now().UTC()
	r.drafts = append(r.drafts, item)
	return nil
}

// ActiveSnapshot returns the current active snapshot of the trámite, if any.
func (r *MemoryRepo) ActiveSnapshot(ctx context.Context, tramiteID int64) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		if r.snapshots[i].TramiteID == tramiteID && r.snapshots[i].Active {
			return r.snapshots[i], nil
		}
	}
	return Snapshot{}, ErrNotFound
}

// Snapshots returns a copy of every stored snapshot. Test helper.
func (r *MemoryRepo) Snapshots() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// DraftReports returns a copy of every stored auxiliary row. Test helper.
func (r *MemoryRepo) DraftReports() []DraftReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DraftReport, len(r.drafts))
	copy(out, r.drafts)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
