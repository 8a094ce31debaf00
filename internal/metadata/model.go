package metadata

import "time"

// Snapshot is one versioned bundle of descriptive metadata for a trámite.
// At most one snapshot is active per trámite; superseded snapshots keep
// their data and lose the active flag.
type Snapshot struct {
	ID          int64
	TramiteID   int64
	Stage       int
	Title       string
	Abstract    string
	Keywords    string
	Budget      float64
	Conclusions *string
	Active      bool
	CreatedAt   time.Time
}

// Fields carries the caller-supplied metadata of a submission.
type Fields struct {
	Title       string  `json:"title"`
	Abstract    string  `json:"abstract"`
	Keywords    string  `json:"keywords"`
	Budget      float64 `json:"budget"`
	Conclusions *string `json:"conclusions,omitempty"`
}

// DraftReport is the stage-14 auxiliary metadata attached to one draft
// report file type, versioned per (trámite, file type). Meeting time and
// place apply only to the meeting minutes type.
type DraftReport struct {
	ID           int64
	TramiteID    int64
	FileTypeID   int
	Stage        int
	DocumentDate string
	MeetingTime  *string
	MeetingPlace *string
	Active       bool
	CreatedAt    time.Time
}

// AuxiliaryItem is the caller-supplied auxiliary metadata for one file type.
type AuxiliaryItem struct {
	FileTypeID   int     `json:"fileTypeId"`
	DocumentDate string  `json:"documentDate"`
	MeetingTime  *string `json:"meetingTime,omitempty"`
	MeetingPlace *string `json:"meetingPlace,omitempty"`
}
