package filetypes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, preloaded with the
// same dictionary the seed migration installs.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[int]FileType
}

// NewMemoryRepo constructs a MemoryRepo with the default dictionary.
func NewMemoryRepo() *MemoryRepo {
	defaults := []FileType{
		{ID: 1, Name: "Proyecto de tesis", MaxSizeMB: 4},
		{ID: 2, Name: "Reporte Turnitin", MaxSizeMB: 4},
		{ID: 3, Name: "Declaración de uso de IA", MaxSizeMB: 4},
		{ID: 4, Name: "Carta de compromiso", MaxSizeMB: 4},
		{ID: 5, Name: "Anexos", MaxSizeMB: 4},
		{ID: 7, Name: "Constancia de matrícula", MaxSizeMB: 4},
		{ID: 8, Name: "Constancia de egresado", MaxSizeMB: 4},
		{ID: 10, Name: "Turnitin del borrador", MaxSizeMB: 4},
		{ID: 11, Name: "Borrador de tesis", MaxSizeMB: 4},
		{ID: 12, Name: "Constancia de idioma", MaxSizeMB: 4},
		{ID: 13, Name: "Recibo de pago", MaxSizeMB: 4},
		{ID: 14, Name: "Dictamen del borrador", MaxSizeMB: 4},
		{ID: 15, Name: "Acta de reunión", MaxSizeMB: 4},
		{ID: 16, Name: "Oficio de designación", MaxSizeMB: 4},
		{ID: 17, Name: "Borrador pre-sustentación", MaxSizeMB: 4},
		{ID: 18, Name: "Turnitin pre-sustentación", MaxSizeMB: 4},
		{ID: 20, Name: "Tesis final", MaxSizeMB: 4},
		{ID: 21, Name: "Observaciones de sustentación", MaxSizeMB: 4},
	}
	data := make(map[int]FileType, len(defaults))
	for _, ft := range defaults {
		data[ft.ID] = ft
	}
	return &MemoryRepo{data: data}
}

// ListByIDs returns the dictionary entries for the given ids, ordered by id.
func (r *MemoryRepo) ListByIDs(ctx context.Context, ids []int) ([]FileType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []FileType
	for _, id := range ids {
		if ft, ok := r.data[id]; ok {
			out = append(out, ft)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
