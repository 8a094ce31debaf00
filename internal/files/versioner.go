package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"tramites-backend/internal/shared/storage/object"
	"tramites-backend/internal/shared/telemetry"
)

// Versioner ingests uploads as new active versions and keeps the version
// lettering of each (trámite, file type) pair monotonic.
type Versioner struct {
	Repo  Repo
	Store object.ObjectStore
	Locks Locker
}

// NewVersioner constructs a Versioner.
func NewVersioner(repo Repo, store object.ObjectStore, locks Locker) *Versioner {
	return &Versioner{Repo: repo, Store: store, Locks: locks}
}

// Ingest stores each upload as the new active version of its file type.
// The version letter is 'A' plus the historical record count for the pair.
// The binary is written under the trámite's storage folder first; the record
// supersede (deactivate old, insert new) then runs as one atomic unit. If
// the supersede fails the stored binary is removed on a best-effort basis
// and the whole ingestion stops with ErrRecordPersist.
func (v *Versioner) Ingest(ctx context.Context, tramiteID int64, stage int, snapshotID int64, projectCode string, uploads []Upload) ([]FileRecord, error) {
	records := make([]FileRecord, 0, len(uploads))
	for _, up := range uploads {
		rec, err := v.ingestOne(ctx, tramiteID, stage, snapshotID, projectCode, up)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (v *Versioner) ingestOne(ctx context.Context, tramiteID int64, stage int, snapshotID int64, projectCode string, up Upload) (FileRecord, error) {
	ext := strings.TrimPrefix(filepath.Ext(up.FileName), ".")
	if ext == "" {
		return FileRecord{}, fmt.Errorf("%w: %q", ErrMissingExtension, up.FileName)
	}
	ext = strings.ToLower(ext)

	unlock, err := v.Locks.Lock(ctx, fmt.Sprintf("tramite-%d/type-%d", tramiteID, up.FileTypeID))
	if err != nil {
		return FileRecord{}, fmt.Errorf("lock version for type %d: %w", up.FileTypeID, err)
	}
	defer unlock()

	count, err := v.Repo.CountAllByType(ctx, tramiteID, up.FileTypeID)
	if err != nil {
		return FileRecord{}, fmt.Errorf("count versions for type %d: %w", up.FileTypeID, err)
	}
	letter := rune('A' + count)

	fileName := fmt.Sprintf("%c%d-%s.%s", letter, up.FileTypeID, projectCode, ext)
	storageKey := fmt.Sprintf("tramite-%d/%s", tramiteID, fileName)

	size, err := v.Store.Put(ctx, storageKey, "application/"+ext, up.Content)
	if err != nil {
		return FileRecord{}, fmt.Errorf("store %s: %w", storageKey, err)
	}

	rec := FileRecord{
		TramiteID:  tramiteID,
		FileTypeID: up.FileTypeID,
		FileName:   fileName,
		StorageKey: storageKey,
		Stage:      stage,
		SnapshotID: snapshotID,
		Active:     true,
		SizeBytes:  size,
	}
	id, err := v.Repo.Supersede(ctx, rec)
	if err != nil {
		if delErr := v.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("files.orphan_cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return FileRecord{}, fmt.Errorf("%w: %v", ErrRecordPersist, err)
	}
	rec.ID = id
	return rec, nil
}

// RelinkUnmodified points the trámite's untouched active records at the new
// snapshot. replacedTypeIDs lists the types just ingested; an empty list
// relinks every active record.
func (v *Versioner) RelinkUnmodified(ctx context.Context, tramiteID int64, replacedTypeIDs []int, snapshotID int64) error {
	return v.Repo.RelinkActive(ctx, tramiteID, replacedTypeIDs, snapshotID)
}
