package observations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []Observation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// Add stores an observation as the reviewer-side system would. Test and
// dev-mode helper; the service itself only reads.
func (r *MemoryRepo) Add(obs Observation) Observation {
	r.mu.Lock()
	defer r.mu.Unlock()
	obs.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, obs)
	return obs
}

// ListByStage returns observations for the trámite at one stage, newest first.
func (r *MemoryRepo) ListByStage(ctx context.Context, tramiteID int64, stage int) ([]Observation, error) {
	return r.ListByStages(ctx, tramiteID, []int{stage})
}

// ListByStages returns observations for the trámite across the given stages, newest first.
func (r *MemoryRepo) ListByStages(ctx context.Context, tramiteID int64, allowedStages []int) ([]Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	allowed := make(map[int]struct{}, len(allowedStages))
	for _, stage := range allowedStages {
		allowed[stage] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Observation
	for _, row := range r.rows {
		if row.TramiteID != tramiteID {
			continue
		}
		if _, ok := allowed[row.Stage]; !ok {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
