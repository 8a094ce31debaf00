package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Supersede runs a deactivate statement followed by an insert returning the
// new row id, inside a single transaction. It is the shared primitive behind
// the deactivate-then-insert versioning used for metadata snapshots, draft
// report metadata and file records: history rows keep their data and lose
// only the active flag.
func Supersede(ctx context.Context, database *sql.DB, deactivate string, deactivateArgs []any, insert string, insertArgs []any) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin supersede tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deactivate, deactivateArgs...); err != nil {
		return 0, fmt.Errorf("deactivate previous rows: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, insert, insertArgs...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert new row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit supersede tx: %w", err)
	}
	return id, nil
}
