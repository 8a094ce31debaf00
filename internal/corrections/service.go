package corrections

import (
	"context"
	"fmt"
	"time"

	"tramites-backend/internal/audit"
	"tramites-backend/internal/files"
	"tramites-backend/internal/metadata"
	"tramites-backend/internal/shared/metrics"
	"tramites-backend/internal/shared/telemetry"
	"tramites-backend/internal/stages"
)

// Submission is one correction round offered by the student: the revised
// metadata, optional auxiliary document metadata and the replaced files.
type Submission struct {
	TramiteID   int64
	Stage       int
	UserID      int64
	ProjectCode string
	Metadata    metadata.Fields
	Auxiliary   []metadata.AuxiliaryItem
	Uploads     []files.Upload
}

// Result reports what a submission produced.
type Result struct {
	SnapshotID int64
	Ordinal    int
	Files      []files.FileRecord
}

// Service orchestrates correction rounds: it supersedes the metadata
// snapshot, versions the uploaded files, relinks untouched records and
// appends the audit entry.
type Service struct {
	Metadata *metadata.Service
	Files    *files.Versioner
	Audit    audit.Repo
}

// SubmitCorrection records one correction round for the stage.
func (s *Service) SubmitCorrection(ctx context.Context, sub Submission) (Result, error) {
	start := time.Now()
	actionCode, err := stages.CorrectionActionCode(sub.Stage)
	if err != nil {
		return Result{}, err
	}

	res, err := s.run(ctx, sub, actionCode, true)
	if err != nil {
		metrics.IncSubmissionFailed()
		return res, err
	}
	metrics.IncCorrectionSubmitted()
	metrics.AddFilesIngested(len(res.Files))
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Milliseconds()))
	return res, nil
}

// SubmitFirstPresentation records the stage's initial hand-in. Only stages
// with a first-presentation action accept it, and only once per trámite.
func (s *Service) SubmitFirstPresentation(ctx context.Context, sub Submission) (Result, error) {
	start := time.Now()
	// Stage 14's first-presentation code exists only for status accounting;
	// the final thesis stage is the sole stage with a submission entry point.
	if sub.Stage != stages.StageFinalThesis {
		return Result{}, stages.ErrUnsupportedStage
	}
	actionCode, _ := stages.FirstPresentationActionCode(sub.Stage)

	presented, err := s.Audit.HasAction(ctx, sub.TramiteID, sub.Stage, actionCode)
	if err != nil {
		metrics.IncSubmissionFailed()
		return Result{}, fmt.Errorf("check first presentation: %w", err)
	}
	if presented {
		return Result{}, ErrAlreadyPresented
	}

	res, err := s.run(ctx, sub, actionCode, false)
	if err != nil {
		metrics.IncSubmissionFailed()
		return res, err
	}
	metrics.IncFirstPresentation()
	metrics.AddFilesIngested(len(res.Files))
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Milliseconds()))
	return res, nil
}

// HasPresented reports whether the trámite already has a first presentation
// for the stage.
func (s *Service) HasPresented(ctx context.Context, tramiteID int64, stage int) (bool, error) {
	if stage != stages.StageFinalThesis {
		return false, stages.ErrUnsupportedStage
	}
	actionCode, _ := stages.FirstPresentationActionCode(stage)
	return s.Audit.HasAction(ctx, tramiteID, stage, actionCode)
}

func (s *Service) run(ctx context.Context, sub Submission, actionCode int, numbered bool) (Result, error) {
	snapshotID, err := s.Metadata.Supersede(ctx, sub.TramiteID, sub.Stage, sub.Metadata)
	if err != nil {
		return Result{}, err
	}

	if sub.Stage == stages.StagePreDefense && len(sub.Auxiliary) > 0 {
		if err := s.Metadata.SupersedeAuxiliary(ctx, sub.TramiteID, sub.Auxiliary); err != nil {
			return Result{}, err
		}
	}

	records, err := s.Files.Ingest(ctx, sub.TramiteID, sub.Stage, snapshotID, sub.ProjectCode, sub.Uploads)
	if err != nil {
		return Result{}, fmt.Errorf("ingest files: %w", err)
	}

	replaced := make([]int, 0, len(records))
	for _, rec := range records {
		replaced = append(replaced, rec.FileTypeID)
	}
	if err := s.Files.RelinkUnmodified(ctx, sub.TramiteID, replaced, snapshotID); err != nil {
		return Result{}, fmt.Errorf("relink unmodified files: %w", err)
	}

	ordinal := 1
	if numbered {
		count, err := s.Audit.CountActions(ctx, sub.TramiteID, sub.Stage, actionCode)
		if err == nil {
			ordinal = count + 1
		}
	}

	message := "Presentación inicial enviada"
	if numbered {
		message = fmt.Sprintf("Corrección %d enviada", ordinal)
	}
	if err := s.Audit.Append(ctx, audit.Action{
		TramiteID:  sub.TramiteID,
		Stage:      sub.Stage,
		ActionCode: actionCode,
		UserID:     sub.UserID,
		Message:    message,
	}); err != nil {
		metrics.IncAuditAppendFailed()
		telemetry.Warn("corrections.audit_append_failed", map[string]any{
			"tramite_id":  sub.TramiteID,
			"stage":       sub.Stage,
			"action_code": actionCode,
			"error":       err.Error(),
		})
	}

	return Result{SnapshotID: snapshotID, Ordinal: ordinal, Files: records}, nil
}
