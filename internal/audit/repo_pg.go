package audit

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CountActions counts log rows for the trámite, stage and action code.
func (r *PGRepo) CountActions(ctx context.Context, tramiteID int64, stage, actionCode int) (int, error) {
	const query = `
SELECT COUNT(*)
FROM audit_actions
WHERE tramite_id = $1 AND stage = $2 AND action_code = $3`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, tramiteID, stage, actionCode).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// HasAction reports whether at least one matching row exists.
func (r *PGRepo) HasAction(ctx context.Context, tramiteID int64, stage, actionCode int) (bool, error) {
	const query = `
SELECT id
FROM audit_actions
WHERE tramite_id = $1 AND stage = $2 AND action_code = $3
LIMIT 1`
	var id int64
	err := r.DB.QueryRowContext(ctx, query, tramiteID, stage, actionCode).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Append inserts a new log row.
func (r *PGRepo) Append(ctx context.Context, action Action) error {
	const query = `
INSERT INTO audit_actions (tramite_id, stage, action_code, user_id, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	createdAt := action.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(
		ctx,
		query,
		action.TramiteID,
		action.Stage,
		action.ActionCode,
		action.UserID,
		action.Message,
		createdAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
