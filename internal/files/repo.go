package files

import "context"

// Repo defines persistence operations for file records.
type Repo interface {
	// CountAllByType counts every historical record for the pair, active or not.
	CountAllByType(ctx context.Context, tramiteID int64, fileTypeID int) (int, error)
	// Supersede deactivates the pair's current record, if any, and inserts
	// rec as the new active one, returning its id. Both steps run as one
	// atomic unit so the pair is never left with two active records.
	Supersede(ctx context.Context, rec FileRecord) (int64, error)
	// RelinkActive points active records at the snapshot. Records whose file
	// type appears in excludedTypeIDs keep their current snapshot; an empty
	// list relinks every active record of the trámite.
	RelinkActive(ctx context.Context, tramiteID int64, excludedTypeIDs []int, snapshotID int64) error
	// ListActive returns the trámite's active records ordered by file type.
	ListActive(ctx context.Context, tramiteID int64) ([]FileRecord, error)
}

// Locker serializes ingestion per (trámite, file type) key so concurrent
// submissions cannot read the same historical count and assign the same
// version letter.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
