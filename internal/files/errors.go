package files

import "errors"

var (
	// ErrMissingExtension indicates an upload whose name carries no extension.
	ErrMissingExtension = errors.New("file name has no extension")

	// ErrRecordPersist indicates the database insert failed after the binary
	// was stored; the stored object has been removed on a best-effort basis.
	ErrRecordPersist = errors.New("file record insert failed")
)
