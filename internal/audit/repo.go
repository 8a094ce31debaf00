package audit

import "context"

// Repo defines persistence operations for the audit log.
type Repo interface {
	// CountActions counts log rows for the trámite, stage and action code.
	CountActions(ctx context.Context, tramiteID int64, stage, actionCode int) (int, error)
	// HasAction reports whether at least one matching row exists.
	HasAction(ctx context.Context, tramiteID int64, stage, actionCode int) (bool, error)
	// Append inserts a new log row.
	Append(ctx context.Context, action Action) error
}
