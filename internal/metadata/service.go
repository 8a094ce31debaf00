package metadata

import (
	"context"
	"fmt"

	"tramites-backend/internal/stages"
)

// Service versions trámite metadata.
type Service struct {
	Repo Repo
}

// Supersede replaces the active snapshot of the trámite with one built from
// fields. Conclusions are kept only for the closing stages; project review
// stages store NULL even when the caller supplied a value.
func (s *Service) Supersede(ctx context.Context, tramiteID int64, stage int, fields Fields) (int64, error) {
	snap := Snapshot{
		TramiteID: tramiteID,
		Stage:     stage,
		Title:     fields.Title,
		Abstract:  fields.Abstract,
		Keywords:  fields.Keywords,
		Budget:    fields.Budget,
	}
	switch stage {
	case stages.StageDraftReview, stages.StagePreDefense, stages.StageFinalThesis:
		snap.Conclusions = fields.Conclusions
	default:
		snap.Conclusions = nil
	}

	id, err := s.Repo.Supersede(ctx, snap)
	if err != nil {
		return 0, fmt.Errorf("supersede metadata: %w", err)
	}
	return id, nil
}

// SupersedeAuxiliary versions the stage-14 auxiliary metadata per file type.
// Meeting time and place are kept only for the meeting minutes type.
func (s *Service) SupersedeAuxiliary(ctx context.Context, tramiteID int64, items []AuxiliaryItem) error {
	for _, item := range items {
		draft := DraftReport{
			TramiteID:    tramiteID,
			FileTypeID:   item.FileTypeID,
			Stage:        stages.StagePreDefense,
			DocumentDate: item.DocumentDate,
		}
		if item.FileTypeID == meetingMinutesType {
			draft.MeetingTime = item.MeetingTime
			draft.MeetingPlace = item.MeetingPlace
		}
		if err := s.Repo.SupersedeDraftReport(ctx, draft); err != nil {
			return fmt.Errorf("supersede auxiliary metadata for type %d: %w", item.FileTypeID, err)
		}
	}
	return nil
}

// meetingMinutesType is the file type whose auxiliary metadata carries
// meeting time and place.
const meetingMinutesType = 15
