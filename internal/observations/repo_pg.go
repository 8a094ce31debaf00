package observations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListByStage returns observations for the trámite at one stage, newest first.
func (r *PGRepo) ListByStage(ctx context.Context, tramiteID int64, stage int) ([]Observation, error) {
	const query = `
SELECT id, tramite_id, stage, user_id, role_id, approved, remark, created_at
FROM observations
WHERE tramite_id = $1 AND stage = $2
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, tramiteID, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservations(rows)
}

// ListByStages returns observations for the trámite across the given stages, newest first.
func (r *PGRepo) ListByStages(ctx context.Context, tramiteID int64, allowedStages []int) ([]Observation, error) {
	if len(allowedStages) == 0 {
		return []Observation{}, nil
	}

	placeholders := make([]string, len(allowedStages))
	args := make([]any, 0, len(allowedStages)+1)
	args = append(args, tramiteID)
	for i, stage := range allowedStages {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, stage)
	}

	query := fmt.Sprintf(`
SELECT id, tramite_id, stage, user_id, role_id, approved, remark, created_at
FROM observations
WHERE tramite_id = $1 AND stage IN (%s)
ORDER BY created_at DESC`, strings.Join(placeholders, ", "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservations(rows)
}

func scanObservations(rows *sql.Rows) ([]Observation, error) {
	var out []Observation
	for rows.Next() {
		var obs Observation
		var remark sql.NullString
		if err := rows.Scan(
			&obs.ID,
			&obs.TramiteID,
			&obs.Stage,
			&obs.UserID,
			&obs.RoleID,
			&obs.Approved,
			&remark,
			&obs.CreatedAt,
		); err != nil {
			return nil, err
		}
		if remark.Valid {
			obs.Remark = remark.String
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
