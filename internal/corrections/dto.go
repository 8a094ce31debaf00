package corrections

import "tramites-backend/internal/files"

type fileResponse struct {
	ID         int64  `json:"id"`
	FileTypeID int    `json:"fileTypeId"`
	FileName   string `json:"fileName"`
	StorageKey string `json:"storageKey"`
	SizeBytes  int64  `json:"sizeBytes"`
}

type submissionResponse struct {
	SnapshotID int64          `json:"snapshotId"`
	Ordinal    int            `json:"ordinal"`
	Files      []fileResponse `json:"files"`
}

type presentedResponse struct {
	AlreadyPresented bool `json:"alreadyPresented"`
}

func toResponse(res Result) submissionResponse {
	out := submissionResponse{
		SnapshotID: res.SnapshotID,
		Ordinal:    res.Ordinal,
		Files:      make([]fileResponse, 0, len(res.Files)),
	}
	for _, rec := range res.Files {
		out.Files = append(out.Files, toFileResponse(rec))
	}
	return out
}

func toFileResponse(rec files.FileRecord) fileResponse {
	return fileResponse{
		ID:         rec.ID,
		FileTypeID: rec.FileTypeID,
		FileName:   rec.FileName,
		StorageKey: rec.StorageKey,
		SizeBytes:  rec.SizeBytes,
	}
}
