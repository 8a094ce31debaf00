package metadata

import "errors"

var (
	// ErrNotFound indicates no active snapshot exists for the trámite.
	ErrNotFound = errors.New("not found")
)
