package media

import (
	"context"

	"mediavault/media-api/catalog"
	"mediavault/media-api/util"
)

// UpdateInput replaces a media row's description, folder assignment and
// tag set. A nil FolderID unfiles the media
type UpdateInput struct {
	Description string
	FolderID    *uint
	Tags        []string
}

// Update rewrites the row and fully replaces its tag links
// (unlink-all, then re-resolve and re-link) in one transaction.
// Reassigning the folder does NOT move the blob: the file URL stays
// stable and only the relational grouping changes
func (m *Manager) Update(ctx context.Context, owner string, id uint, in UpdateInput) (catalog.MediaWithTags, error) {
	tags := util.NormalizeTags(in.Tags)

	err := m.Catalog.Transaction(ctx, func(tx *catalog.Store) error {
		if _, err := tx.MediaByID(ctx, owner, id); err != nil {
			return err
		}

		if in.FolderID != nil {
			if _, err := tx.FolderByID(ctx, owner, *in.FolderID); err != nil {
				return err
			}
		}

		if err := tx.UpdateMedia(ctx, owner, id, in.Description, in.FolderID); err != nil {
			return err
		}

		if err := tx.UnlinkAllTags(ctx, id); err != nil {
			return err
		}

		return applyTags(ctx, tx, id, tags)
	})
	if err != nil {
		return catalog.MediaWithTags{}, mapNotFound(err)
	}

	return m.Get(ctx, owner, id)
}
