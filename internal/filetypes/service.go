package filetypes

import (
	"context"
	"fmt"

	"tramites-backend/internal/stages"
)

// Service resolves the file-type catalogue for a stage: the dictionary
// entries the stage requires, annotated with their obligatory flag.
type Service struct {
	Repo Repo
}

// Catalogue returns the catalogue for the stage. alreadyCorrected widens the
// stage-14 set and relaxes obligatory rules per the stage policy.
func (s *Service) Catalogue(ctx context.Context, stage int, alreadyCorrected bool) ([]CatalogueEntry, error) {
	ids, err := stages.RequiredFileTypes(stage, alreadyCorrected)
	if err != nil {
		return nil, err
	}

	types, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list file types: %w", err)
	}

	out := make([]CatalogueEntry, 0, len(types))
	for _, ft := range types {
		out = append(out, CatalogueEntry{
			FileType:   ft,
			Obligatory: stages.IsObligatory(stage, ft.ID, alreadyCorrected),
		})
	}
	return out, nil
}
