package filetypes

// FileType is one entry of the file-type dictionary.
type FileType struct {
	ID          int
	Name        string
	Description string
	MaxSizeMB   int
}

// CatalogueEntry is a dictionary entry combined with the stage policy: the
// obligatory flag depends on the stage and on whether a correction has
// already been submitted.
type CatalogueEntry struct {
	FileType
	Obligatory bool
}
