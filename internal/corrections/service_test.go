package corrections

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tramites-backend/internal/audit"
	"tramites-backend/internal/files"
	"tramites-backend/internal/metadata"
	"tramites-backend/internal/shared/storage/object/local"
	"tramites-backend/internal/stages"
)

type fixture struct {
	svc       *Service
	metaRepo  *metadata.MemoryRepo
	fileRepo  *files.MemoryRepo
	auditRepo *audit.MemoryRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	metaRepo := metadata.NewMemoryRepo()
	fileRepo := files.NewMemoryRepo()
	auditRepo := audit.NewMemoryRepo()
	svc := &Service{
		Metadata: &metadata.Service{Repo: metaRepo},
		Files:    files.NewVersioner(fileRepo, local.New(t.TempDir()), files.NewMemoryLocker()),
		Audit:    auditRepo,
	}
	return fixture{svc: svc, metaRepo: metaRepo, fileRepo: fileRepo, auditRepo: auditRepo}
}

func submission(stage int, uploads ...files.Upload) Submission {
	return Submission{
		TramiteID:   11,
		Stage:       stage,
		UserID:      7,
		ProjectCode: "T2024",
		Metadata: metadata.Fields{
			Title:    "Título",
			Abstract: "Resumen",
			Keywords: "a, b",
			Budget:   1200.50,
		},
		Uploads: uploads,
	}
}

func TestSubmitCorrectionRecordsAuditOrdinal(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	up := func(body string) files.Upload {
		return files.Upload{FileTypeID: 1, FileName: "proyecto.pdf", Content: strings.NewReader(body)}
	}

	res, err := fx.svc.SubmitCorrection(ctx, submission(stages.StageProjectReview1, up("v1")))
	if err != nil {
		t.Fatalf("first correction: %v", err)
	}
	if res.Ordinal != 1 {
		t.Fatalf("ordinal = %d, want 1", res.Ordinal)
	}

	res, err = fx.svc.SubmitCorrection(ctx, submission(stages.StageProjectReview1, up("v2")))
	if err != nil {
		t.Fatalf("second correction: %v", err)
	}
	if res.Ordinal != 2 {
		t.Fatalf("ordinal = %d, want 2", res.Ordinal)
	}

	actions := fx.auditRepo.Actions()
	if len(actions) != 2 {
		t.Fatalf("audit actions = %d, want 2", len(actions))
	}
	last := actions[len(actions)-1]
	if last.ActionCode != 7 {
		t.Fatalf("action code = %d, want 7", last.ActionCode)
	}
	if last.Message != "Corrección 2 enviada" {
		t.Fatalf("message = %q", last.Message)
	}
}

func TestSubmitCorrectionRelinksUntouchedFiles(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	sub := submission(stages.StagePreDefense,
		files.Upload{FileTypeID: 17, FileName: "borrador.pdf", Content: strings.NewReader("a")},
		files.Upload{FileTypeID: 18, FileName: "similitud.pdf", Content: strings.NewReader("b")},
	)
	if _, err := fx.svc.SubmitCorrection(ctx, sub); err != nil {
		t.Fatalf("seed correction: %v", err)
	}

	sub = submission(stages.StagePreDefense,
		files.Upload{FileTypeID: 17, FileName: "borrador.pdf", Content: strings.NewReader("a2")},
	)
	res, err := fx.svc.SubmitCorrection(ctx, sub)
	if err != nil {
		t.Fatalf("second correction: %v", err)
	}

	active, err := fx.fileRepo.ListActive(ctx, 11)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active files = %d, want 2", len(active))
	}
	for _, rec := range active {
		if rec.SnapshotID != res.SnapshotID {
			t.Fatalf("type %d linked to snapshot %d, want %d", rec.FileTypeID, rec.SnapshotID, res.SnapshotID)
		}
	}
}

func TestSubmitCorrectionStoresAuxiliaryMetadataOnPreDefense(t *testing.T) {
	fx := newFixture(t)
	timeStr := "10:00"
	place := "Sala de grados"

	sub := submission(stages.StagePreDefense)
	sub.Auxiliary = []metadata.AuxiliaryItem{
		{FileTypeID: 14, DocumentDate: "2024-06-01"},
		{FileTypeID: 15, DocumentDate: "2024-06-02", MeetingTime: &timeStr, MeetingPlace: &place},
	}
	if _, err := fx.svc.SubmitCorrection(context.Background(), sub); err != nil {
		t.Fatalf("correction: %v", err)
	}

	reports := fx.metaRepo.DraftReports()
	if len(reports) != 2 {
		t.Fatalf("draft reports = %d, want 2", len(reports))
	}
	for _, rep := range reports {
		if rep.FileTypeID == 15 {
			if rep.MeetingTime == nil || *rep.MeetingTime != timeStr {
				t.Fatalf("meeting time not kept for type 15: %+v", rep)
			}
		} else if rep.MeetingTime != nil || rep.MeetingPlace != nil {
			t.Fatalf("meeting fields kept for type %d", rep.FileTypeID)
		}
	}
}

func TestSubmitCorrectionIgnoresAuxiliaryOutsidePreDefense(t *testing.T) {
	fx := newFixture(t)

	sub := submission(stages.StageFinalThesis)
	sub.Auxiliary = []metadata.AuxiliaryItem{{FileTypeID: 14, DocumentDate: "2024-06-01"}}
	if _, err := fx.svc.SubmitCorrection(context.Background(), sub); err != nil {
		t.Fatalf("correction: %v", err)
	}
	if got := len(fx.metaRepo.DraftReports()); got != 0 {
		t.Fatalf("draft reports = %d, want 0", got)
	}
}

func TestSubmitCorrectionRejectsStageOutsideCycle(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.SubmitCorrection(context.Background(), submission(9))
	if !errors.Is(err, stages.ErrUnsupportedStage) {
		t.Fatalf("err = %v, want ErrUnsupportedStage", err)
	}
}

func TestSubmitCorrectionSurvivesAuditFailure(t *testing.T) {
	fx := newFixture(t)
	fx.svc.Audit = failingAudit{}

	res, err := fx.svc.SubmitCorrection(context.Background(), submission(stages.StageProjectReview1,
		files.Upload{FileTypeID: 1, FileName: "proyecto.pdf", Content: strings.NewReader("x")},
	))
	if err != nil {
		t.Fatalf("correction: %v", err)
	}
	if res.Ordinal != 1 {
		t.Fatalf("ordinal = %d, want fallback 1", res.Ordinal)
	}
}

func TestSubmitFirstPresentationOncePerTramite(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	sub := submission(stages.StageFinalThesis,
		files.Upload{FileTypeID: 20, FileName: "tesis.pdf", Content: strings.NewReader("x")},
	)
	res, err := fx.svc.SubmitFirstPresentation(ctx, sub)
	if err != nil {
		t.Fatalf("first presentation: %v", err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(res.Files))
	}

	actions := fx.auditRepo.Actions()
	if len(actions) != 1 || actions[0].ActionCode != 63 {
		t.Fatalf("audit actions = %+v, want one with code 63", actions)
	}
	if actions[0].Message != "Presentación inicial enviada" {
		t.Fatalf("message = %q", actions[0].Message)
	}

	if _, err := fx.svc.SubmitFirstPresentation(ctx, sub); !errors.Is(err, ErrAlreadyPresented) {
		t.Fatalf("err = %v, want ErrAlreadyPresented", err)
	}
}

func TestSubmitFirstPresentationRejectedForPreDefense(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.SubmitFirstPresentation(context.Background(), submission(stages.StagePreDefense))
	if !errors.Is(err, stages.ErrUnsupportedStage) {
		t.Fatalf("err = %v, want ErrUnsupportedStage", err)
	}
}

func TestHasPresentedReflectsAuditLog(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	presented, err := fx.svc.HasPresented(ctx, 11, stages.StageFinalThesis)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if presented {
		t.Fatalf("presented before any submission")
	}

	if _, err := fx.svc.SubmitFirstPresentation(ctx, submission(stages.StageFinalThesis)); err != nil {
		t.Fatalf("first presentation: %v", err)
	}

	presented, err = fx.svc.HasPresented(ctx, 11, stages.StageFinalThesis)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !presented {
		t.Fatalf("presented not reflected after submission")
	}
}

type failingAudit struct{}

func (failingAudit) CountActions(ctx context.Context, tramiteID int64, stage, actionCode int) (int, error) {
	return 0, errors.New("boom")
}

func (failingAudit) HasAction(ctx context.Context, tramiteID int64, stage, actionCode int) (bool, error) {
	return false, nil
}

func (failingAudit) Append(ctx context.Context, action audit.Action) error {
	return errors.New("boom")
}
