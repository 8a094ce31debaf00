package filetypes

import "context"

// Repo defines read access to the file-type dictionary.
type Repo interface {
	// ListByIDs returns the dictionary entries for the given ids, ordered by id.
	ListByIDs(ctx context.Context, ids []int) ([]FileType, error)
}
