package files

import (
	"io"
	"time"
)

// FileRecord is one uploaded artifact of a trámite. At most one record per
// (trámite, file type) pair is active; superseded records stay in place with
// the active flag cleared. The version letter in the file name is derived
// from the total historical count for the pair, so letters are never reused.
type FileRecord struct {
	ID         int64
	TramiteID  int64
	FileTypeID int
	FileName   string
	StorageKey string
	Stage      int
	SnapshotID int64
	Active     bool
	SizeBytes  int64
	CreatedAt  time.Time
}

// Upload is one artifact offered in a submission.
type Upload struct {
	FileTypeID int
	FileName   string
	Content    io.Reader
}
