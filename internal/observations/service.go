package observations

import (
	"context"
	"fmt"
	"sort"

	"tramites-backend/internal/audit"
	"tramites-backend/internal/stages"
)

// Service derives the correction state of a trámite from the observation
// history and the audit log. It is a read model recomputed on demand; the
// status is never stored.
type Service struct {
	Repo  Repo
	Audit audit.Repo
}

// Status computes the current correction status for a trámite at one stage.
//
// For stages 14 and 16 the initial presentation counts as a submission even
// though no observation existed to correct, so the pending-vs-submitted
// parity used elsewhere only applies after that first submission is logged.
func (s *Service) Status(ctx context.Context, tramiteID int64, stage int) (Status, error) {
	actionCode, err := stages.CorrectionActionCode(stage)
	if err != nil {
		return Status{}, err
	}

	obs, err := s.Repo.ListByStage(ctx, tramiteID, stage)
	if err != nil {
		return Status{}, fmt.Errorf("list observations: %w", err)
	}

	pending := 0
	for _, o := range obs {
		if !o.Approved {
			pending++
		}
	}

	submitted, err := s.Audit.CountActions(ctx, tramiteID, stage, actionCode)
	if err != nil {
		return Status{}, fmt.Errorf("count corrections: %w", err)
	}

	status := Status{PendingCount: pending, Observations: obs}

	firstCode, twoPhase := stages.FirstPresentationActionCode(stage)
	if !twoPhase {
		status.HasCorrections = pending > 0
		status.AlreadySubmittedCorrection = submitted >= pending
		return status, nil
	}

	totalSubmissions := submitted
	hasFirst, err := s.Audit.HasAction(ctx, tramiteID, stage, firstCode)
	if err == nil && hasFirst {
		totalSubmissions++
	}

	if pending == 0 {
		status.HasCorrections = false
		status.AlreadySubmittedCorrection = totalSubmissions > 0
		return status, nil
	}

	status.HasCorrections = true
	status.AlreadySubmittedCorrection = totalSubmissions > pending
	return status, nil
}

// AllByTramite returns every observation raised against the trámite at cycle
// stages up to and including currentStage, grouped per stage.
func (s *Service) AllByTramite(ctx context.Context, tramiteID int64, currentStage int) (GroupedObservations, error) {
	var allowed []int
	for _, stage := range stages.Cycle() {
		if stage <= currentStage {
			allowed = append(allowed, stage)
		}
	}

	grouped := GroupedObservations{ByStage: map[int][]Observation{}}
	if len(allowed) == 0 {
		return grouped, nil
	}

	obs, err := s.Repo.ListByStages(ctx, tramiteID, allowed)
	if err != nil {
		return GroupedObservations{}, fmt.Errorf("list observations: %w", err)
	}

	for _, o := range obs {
		if _, ok := grouped.ByStage[o.Stage]; !ok {
			grouped.Stages = append(grouped.Stages, o.Stage)
		}
		grouped.ByStage[o.Stage] = append(grouped.ByStage[o.Stage], o)
	}
	sort.Ints(grouped.Stages)
	grouped.Total = len(obs)
	return grouped, nil
}
