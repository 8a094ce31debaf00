package audit

import "time"

// Action is one row of the append-only audit log. Rows are never updated or
// deleted; derived counts over them are the source of truth for how many
// times a submitter has acted at a stage.
type Action struct {
	ID         int64
	TramiteID  int64
	Stage      int
	ActionCode int
	UserID     int64
	Message    string
	CreatedAt  time.Time
}
