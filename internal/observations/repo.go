package observations

import "context"

// Repo defines read operations over stored observations. This service never
// creates or mutates observations.
type Repo interface {
	// ListByStage returns observations for the trámite at one stage, newest first.
	ListByStage(ctx context.Context, tramiteID int64, stage int) ([]Observation, error)
	// ListByStages returns observations for the trámite across the given stages, newest first.
	ListByStages(ctx context.Context, tramiteID int64, allowedStages []int) ([]Observation, error)
}
