package filetypes

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

// ListByIDs returns the dictionary entries for the given ids, ordered by id.
func (r *PGRepo) ListByIDs(ctx context.Context, ids []int) ([]FileType, error) {
	if len(ids) == 0 {
		return []FileType{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
SELECT id, name, description, max_size_mb
FROM file_types
WHERE id IN (%s)
ORDER BY id`, strings.Join(placeholders, ", "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileType
	for rows.Next() {
		var ft FileType
		var description sql.NullString
		if err := rows.Scan(&ft.ID, &ft.Name, &description, &ft.MaxSizeMB); err != nil {
			return nil, err
		}
		if description.Valid {
			ft.Description = description.String
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
