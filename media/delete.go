package media

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Delete removes a single media: blob first, row after. A crash in
// between leaves a row with a missing file, which is detectable and
// recoverable by re-running the delete; the reverse order would leave a
// file nothing references
func (m *Manager) Delete(ctx context.Context, owner string, id uint) error {
	row, err := m.Catalog.MediaByID(ctx, owner, id)
	if err != nil {
		return mapNotFound(err)
	}

	// Already-absent blobs are fine: a previous attempt may have been
	// interrupted after the removal
	if _, err := m.Blobs.Remove(row.FileURL); err != nil {
		return fmt.Errorf("%w: %v", ErrFilesystem, err)
	}

	_, err = m.Catalog.DeleteMediaRows(ctx, owner, []uint{id})
	return err
}

// BlobFailure is one file that could not be removed during a bulk
// operation. The row behind it is deleted regardless, turning the file
// into an orphan for the sweep instead of blocking the batch
type BlobFailure struct {
	FileURL string `json:"file_url"`
	Reason  string `json:"reason"`
}

// BulkResult reports what a bulk delete actually did
type BulkResult struct {
	DeletedIDs  []uint        `json:"deleted_ids"`
	FailedBlobs []BlobFailure `json:"failed_blobs,omitempty"`
}

// DeleteBulk removes a set of media. Ids the caller doesn't own are
// silently ignored. Blob removals are attempted first and failures are
// collected rather than fatal; the relational rows for the whole owned
// set are deleted afterwards in one transaction
func (m *Manager) DeleteBulk(ctx context.Context, owner string, ids []uint) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, fmt.Errorf("%w: empty id list", ErrValidation)
	}

	rows, err := m.Catalog.MediaByIDs(ctx, owner, ids)
	if err != nil {
		return BulkResult{}, err
	}

	res := BulkResult{DeletedIDs: make([]uint, 0, len(rows))}

	owned := make([]uint, 0, len(rows))
	for _, row := range rows {
		owned = append(owned, row.ID)

		if _, err := m.Blobs.Remove(row.FileURL); err != nil {
			zap.L().Warn("Failed to remove blob during bulk delete",
				zap.String("fileURL", row.FileURL),
				zap.Error(err))

			res.FailedBlobs = append(res.FailedBlobs, BlobFailure{
				FileURL: row.FileURL,
				Reason:  err.Error(),
			})
		}
	}

	if len(owned) == 0 {
		return res, nil
	}

	if _, err := m.Catalog.DeleteMediaRows(ctx, owner, owned); err != nil {
		return res, err
	}

	res.DeletedIDs = owned
	return res, nil
}
