package metadata

import (
	"context"
	"database/sql"
	"errors"

	"tramites-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Supersede deactivates every active snapshot of the trámite and inserts
// snap as the new active one, returning its id. Both steps run in one
// transaction so the trámite is never left without an active snapshot.
func (r *PGRepo) Supersede(ctx context.Context, snap Snapshot) (int64, error) {
	const deactivate = `
UPDATE metadata_snapshots
SET active = FALSE
WHERE tramite_id = $1 AND active`

	const insert = `
INSERT INTO metadata_snapshots (tramite_id, stage, title, abstract, keywords, budget, conclusions, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
RETURNING id`

	var conclusions sql.NullString
	if snap.Conclusions != nil {
		conclusions = sql.NullString{String: *snap.Conclusions, Valid: true}
	}

	return db.Supersede(ctx, r.DB,
		deactivate, []any{snap.TramiteID},
		insert, []any{snap.TramiteID, snap.Stage, snap.Title, snap.Abstract, snap.Keywords, snap.Budget, conclusions},
	)
}

// SupersedeDraftReport deactivates prior auxiliary rows for the
// (trámite, file type) pair and inserts item as the new active one.
func (r *PGRepo) SupersedeDraftReport(ctx context.Context, item DraftReport) error {
	const deactivate = `
UPDATE draft_report_metadata
SET active = FALSE
WHERE tramite_id = $1 AND file_type_id = $2 AND active`

	const insert = `
INSERT INTO draft_report_metadata (tramite_id, file_type_id, stage, document_date, meeting_time, meeting_place, active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
RETURNING id`

	var meetingTime, meetingPlace sql.NullString
	if item.MeetingTime != nil {
		meetingTime = sql.NullString{String: *item.MeetingTime, Valid: true}
	}
	if item.MeetingPlace != nil {
		meetingPlace = sql.NullString{String: *item.MeetingPlace, Valid: true}
	}

	_, err := db.Supersede(ctx, r.DB,
		deactivate, []any{item.TramiteID, item.FileTypeID},
		insert, []any{item.TramiteID, item.FileTypeID, item.Stage, item.DocumentDate, meetingTime, meetingPlace},
	)
	return err
}

// ActiveSnapshot returns the current active snapshot of the trámite, if any.
func (r *PGRepo) ActiveSnapshot(ctx context.Context, tramiteID int64) (Snapshot, error) {
	const query = `
SELECT id, tramite_id, stage, title, abstract, keywords, budget, conclusions, active, created_at
FROM metadata_snapshots
WHERE tramite_id = $1 AND active
LIMIT 1`

	var snap Snapshot
	var conclusions sql.NullString
	err := r.DB.QueryRowContext(ctx, query, tramiteID).Scan(
		&snap.ID,
		&snap.TramiteID,
		&snap.Stage,
		&snap.Title,
		&snap.Abstract,
		&snap.Keywords,
		&snap.Budget,
		&conclusions,
		&snap.Active,
		&snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	if conclusions.Valid {
		snap.Conclusions = &conclusions.String
	}
	return snap, nil
}

var _ Repo = (*PGRepo)(nil)
