package observations

import "time"

// Observation is a reviewer-raised remark against a trámite at a stage.
// Observations are created by the reviewer-side system and are immutable
// here; a pending observation is resolved only by inference over later
// correction submissions, never by mutating the row.
type Observation struct {
	ID        int64
	TramiteID int64
	Stage     int
	UserID    int64
	RoleID    int64
	Approved  bool
	Remark    string
	CreatedAt time.Time
}

// Status is the derived correction state of a trámite at one stage.
type Status struct {
	HasCorrections             bool
	PendingCount               int
	AlreadySubmittedCorrection bool
	Observations               []Observation
}

// GroupedObservations is the per-stage view of every observation raised
// against a trámite up to its current stage.
type GroupedObservations struct {
	ByStage map[int][]Observation
	Stages  []int
	Total   int
}
