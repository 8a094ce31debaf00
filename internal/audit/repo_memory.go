package audit

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []Action
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// CountActions counts log rows for the trámite, stage and action code.
func (r *MemoryRepo) CountActions(ctx context.Context, tramiteID int64, stage, actionCode int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, row := range r.rows {
		if row.TramiteID == tramiteID && row.Stage == stage && row.ActionCode == actionCode {
			count++
		}
	}
	return count, nil
}

// HasAction reports whether at least one matching row exists.
func (r *MemoryRepo) HasAction(ctx context.Context, tramiteID int64, stage, actionCode int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.TramiteID == tramiteID && row.Stage == stage && row.ActionCode == actionCode {
			return true, nil
		}
	}
	return false, nil
}

// Append inserts a new log row.
func (r *MemoryRepo) Append(ctx context.Context, action Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	action.ID = r.nextID
	r.nextID++
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}
	r.rows = append(r.rows, action)
	return nil
}

// Actions returns a copy of all rows, oldest first. Test helper.
func (r *MemoryRepo) Actions() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Action, len(r.rows))
	copy(out, r.rows)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
