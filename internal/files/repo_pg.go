package files

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tramites-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CountAllByType counts every historical record for the pair, active or not.
func (r *PGRepo) CountAllByType(ctx context.Context, tramiteID int64, fileTypeID int) (int, error) {
	const query = `
SELECT COUNT(*)
FROM tramite_files
WHERE tramite_id = $1 AND file_type_id = $2`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, tramiteID, fileTypeID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Supersede deactivates the pair's current record and inserts rec as the new
// active one inside a single transaction.
func (r *PGRepo) Supersede(ctx context.Context, rec FileRecord) (int64, error) {
	const deactivate = `
UPDATE tramite_files
SET active = FALSE
WHERE tramite_id = $1 AND file_type_id = $2 AND active`

	const insert = `
INSERT INTO tramite_files (tramite_id, file_type_id, file_name, storage_key, stage, snapshot_id, active, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
RETURNING id`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return db.Supersede(ctx, r.DB,
		deactivate, []any{rec.TramiteID, rec.FileTypeID},
		insert, []any{rec.TramiteID, rec.FileTypeID, rec.FileName, rec.StorageKey, rec.Stage, rec.SnapshotID, rec.SizeBytes, createdAt},
	)
}

// RelinkActive points active records at the snapshot, skipping excluded types.
func (r *PGRepo) RelinkActive(ctx context.Context, tramiteID int64, excludedTypeIDs []int, snapshotID int64) error {
	if len(excludedTypeIDs) == 0 {
		const query = `
UPDATE tramite_files
SET snapshot_id = $1
WHERE tramite_id = $2 AND active`
		_, err := r.DB.ExecContext(ctx, query, snapshotID, tramiteID)
		return err
	}

	placeholders := make([]string, len(excludedTypeIDs))
	args := []any{snapshotID, tramiteID}
	for i, id := range excludedTypeIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, id)
	}
	query := fmt.Sprintf(`
UPDATE tramite_files
SET snapshot_id = $1
WHERE tramite_id = $2 AND active AND file_type_id NOT IN (%s)`, strings.Join(placeholders, ", "))
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

// ListActive returns the trámite's active records ordered by file type.
func (r *PGRepo) ListActive(ctx context.Context, tramiteID int64) ([]FileRecord, error) {
	const query = `
SELECT id, tramite_id, file_type_id, file_name, storage_key, stage, snapshot_id, active, size_bytes, created_at
FROM tramite_files
WHERE tramite_id = $1 AND active
ORDER BY file_type_id`
	rows, err := r.DB.QueryContext(ctx, query, tramiteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRecord
	for rows.Next() {
		var rec FileRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.TramiteID,
			&rec.FileTypeID,
			&rec.FileName,
			&rec.StorageKey,
			&rec.Stage,
			&rec.SnapshotID,
			&rec.Active,
			&rec.SizeBytes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
