package files

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []FileRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// CountAllByType counts every historical record for the pair, active or not.
func (r *MemoryRepo) CountAllByType(ctx context.Context, tramiteID int64, fileTypeID int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, rec := range r.rows {
		if rec.TramiteID == tramiteID && rec.FileTypeID == fileTypeID {
			count++
		}
	}
	return count, nil
}

// Supersede deactivates the pair's current record and inserts rec as the new
// active one.
func (r *MemoryRepo) Supersede(ctx context.Context, rec FileRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].TramiteID == rec.TramiteID && r.rows[i].FileTypeID == rec.FileTypeID {
			r.rows[i].Active = false
		}
	}
	rec.ID = r.nextID
	r.nextID++
	rec.Active = true
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.rows = append(r.rows, rec)
	return rec.ID, nil
}

// RelinkActive points active records at the snapshot, skipping excluded types.
func (r *MemoryRepo) RelinkActive(ctx context.Context, tramiteID int64, excludedTypeIDs []int, snapshotID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	excluded := make(map[int]struct{}, len(excludedTypeIDs))
	for _, id := range excludedTypeIDs {
		excluded[id] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].TramiteID != tramiteID || !r.rows[i].Active {
			continue
		}
		if _, skip := excluded[r.rows[i].FileTypeID]; skip {
			continue
		}
		r.rows[i].SnapshotID = snapshotID
	}
	return nil
}

// ListActive returns the trámite's active records ordered by file type.
func (r *MemoryRepo) ListActive(ctx context.Context, tramiteID int64) ([]FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []FileRecord
	for _, rec := range r.rows {
		if rec.TramiteID == tramiteID && rec.Active {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileTypeID < out[j].FileTypeID })
	return out, nil
}

// All returns a copy of every stored record. Test helper.
func (r *MemoryRepo) All() []FileRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FileRecord, len(r.rows))
	copy(out, r.rows)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
