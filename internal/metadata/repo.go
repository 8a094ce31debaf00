package metadata

import "context"

// Repo defines persistence operations for metadata snapshots and the
// stage-14 auxiliary metadata. Both follow the deactivate-then-insert
// supersede pattern; implementations must run each supersede atomically.
type Repo interface {
	// Supersede deactivates every active snapshot of the trámite and inserts
	// snap as the new active one, returning its id.
	Supersede(ctx context.Context, snap Snapshot) (int64, error)
	// SupersedeDraftReport deactivates prior auxiliary rows for the
	// (trámite, file type) pair and inserts item as the new active one.
	SupersedeDraftReport(ctx context.Context, item DraftReport) error
	// ActiveSnapshot returns the current active snapshot of the trámite, if any.
	ActiveSnapshot(ctx context.Context, tramiteID int64) (Snapshot, error)
}
