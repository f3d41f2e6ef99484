package media

import (
	"context"
	"fmt"
	"strings"

	"mediavault/media-api/catalog"
	"mediavault/media-api/model"

	"go.uber.org/zap"
)

func (m *Manager) CreateFolder(ctx context.Context, owner, name string) (model.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return model.Folder{}, fmt.Errorf("%w: empty folder name", ErrValidation)
	}

	return m.Catalog.CreateFolder(ctx, owner, name)
}

func (m *Manager) ListFolders(ctx context.Context, owner string) ([]model.Folder, error) {
	return m.Catalog.Folders(ctx, owner)
}

// DeleteFolder cascades: blobs of the contained media go first, then
// (in one transaction) their tag links, their rows and the folder row,
// and the directory tree last. Children are always gone before the
// parent, so a crash mid-sequence can at worst leave a folder row with
// no remaining media, which the next listing renders as simply empty.
// Files already missing from disk, e.g. from an earlier interrupted
// delete, don't stop the cascade
func (m *Manager) DeleteFolder(ctx context.Context, owner string, id uint) error {
	if _, err := m.Catalog.FolderByID(ctx, owner, id); err != nil {
		return mapNotFound(err)
	}

	rows, err := m.Catalog.MediaInFolder(ctx, owner, id)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := m.Blobs.Remove(row.FileURL); err != nil {
			zap.L().Warn("Failed to remove blob during folder cascade",
				zap.String("fileURL", row.FileURL),
				zap.Error(err))
		}
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	err = m.Catalog.Transaction(ctx, func(tx *catalog.Store) error {
		if len(ids) > 0 {
			if _, err := tx.DeleteMediaRows(ctx, owner, ids); err != nil {
				return err
			}
		}

		return tx.DeleteFolder(ctx, owner, id)
	})
	if err != nil {
		return mapNotFound(err)
	}

	if err := m.Blobs.RemoveFolder(owner, id); err != nil {
		return fmt.Errorf("%w: %v", ErrFilesystem, err)
	}

	return nil
}
