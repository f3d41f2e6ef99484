package catalog

import (
	"context"
	"strings"

	"mediavault/media-api/model"
)

// MediaWithTags is a media row enriched with its tag names on read.
// Tags is always non-nil so it serializes as [] and not null
type MediaWithTags struct {
	model.Media
	Tags []string `gorm:"-" json:"tags"`
}

func (s *Store) CreateMedia(ctx context.Context, m *model.Media) error {
	return s.db.WithContext(ctx).Create(m).Error
}

// Media lists a user's media enriched with tags, newest first
func (s *Store) Media(ctx context.Context, owner string) ([]MediaWithTags, error) {
	rows := make([]model.Media, 0)

	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC, id DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return s.withTags(ctx, rows)
}

func (s *Store) MediaByID(ctx context.Context, owner string, id uint) (MediaWithTags, error) {
	var row model.Media

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		First(&row).
		Error
	if err != nil {
		return MediaWithTags{}, err
	}

	enriched, err := s.withTags(ctx, []model.Media{row})
	if err != nil {
		return MediaWithTags{}, err
	}

	return enriched[0], nil
}

// MediaByIDs returns the subset of rows from ids that the owner
// actually owns. Unknown or foreign ids are silently skipped
func (s *Store) MediaByIDs(ctx context.Context, owner string, ids []uint) ([]model.Media, error) {
	rows := make([]model.Media, 0, len(ids))

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", owner, ids).
		Find(&rows).
		Error

	return rows, err
}

func (s *Store) MediaInFolder(ctx context.Context, owner string, folderID uint) ([]model.Media, error) {
	rows := make([]model.Media, 0)

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND folder_id = ?", owner, folderID).
		Find(&rows).
		Error

	return rows, err
}

// SearchMedia matches the query case-insensitively against the
// description or any linked tag name. Media matched through several
// tags appear once
func (s *Store) SearchMedia(ctx context.Context, owner, query string) ([]model.Media, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows := make([]model.Media, 0)

	err := s.db.WithContext(ctx).
		Model(&model.Media{}).
		Distinct("media.*").
		Joins("LEFT JOIN media_tags ON media_tags.media_id = media.id").
		Joins("LEFT JOIN tags ON tags.id = media_tags.tag_id").
		Where("media.user_id = ?", owner).
		Where("LOWER(media.description) LIKE ? OR LOWER(tags.name) LIKE ?", pattern, pattern).
		Order("media.created_at DESC").
		Find(&rows).
		Error

	return rows, err
}

// UpdateMedia rewrites description and folder assignment. The file URL
// is deliberately untouched: moving between folders is a relational
// regrouping, not a blob move
func (s *Store) UpdateMedia(ctx context.Context, owner string, id uint, description string, folderID *uint) error {
	return s.db.WithContext(ctx).
		Model(&model.Media{}).
		Where("user_id = ? AND id = ?", owner, id).
		Updates(map[string]any{
			"description": description,
			"folder_id":   folderID,
		}).
		Error
}

// DeleteMediaRows removes the owned subset of the given media rows
// together with their tag links, in one transaction, and returns the
// file URLs those rows pointed at so the caller can reconcile the blob
// store. Ids the owner doesn't own are ignored
func (s *Store) DeleteMediaRows(ctx context.Context, owner string, ids []uint) ([]string, error) {
	urls := make([]string, 0, len(ids))

	err := s.Transaction(ctx, func(tx *Store) error {
		rows, err := tx.MediaByIDs(ctx, owner, ids)
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		owned := make([]uint, 0, len(rows))
		for _, row := range rows {
			owned = append(owned, row.ID)
			urls = append(urls, row.FileURL)
		}

		err = tx.db.WithContext(ctx).
			Where("media_id IN ?", owned).
			Delete(&model.MediaTag{}).
			Error
		if err != nil {
			return err
		}

		return tx.db.WithContext(ctx).
			Where("id IN ?", owned).
			Delete(&model.Media{}).
			Error
	})
	if err != nil {
		return nil, err
	}

	return urls, nil
}

// FileURLExists reports whether any media row references the given
// file URL. Used by the orphan sweep
func (s *Store) FileURLExists(ctx context.Context, fileURL string) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&model.Media{}).
		Where("file_url = ?", fileURL).
		Count(&count).
		Error

	return count > 0, err
}

// withTags fetches tag names for a batch of rows with a single join
// query and stitches them in
func (s *Store) withTags(ctx context.Context, rows []model.Media) ([]MediaWithTags, error) {
	out := make([]MediaWithTags, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	type link struct {
		MediaID uint
		Name    string
	}

	links := make([]link, 0)

	err := s.db.WithContext(ctx).
		Model(&model.MediaTag{}).
		Select("media_tags.media_id, tags.name").
		Joins("JOIN tags ON tags.id = media_tags.tag_id").
		Where("media_tags.media_id IN ?", ids).
		Order("tags.name").
		Scan(&links).
		Error
	if err != nil {
		return nil, err
	}

	byMedia := make(map[uint][]string, len(rows))
	for _, l := range links {
		byMedia[l.MediaID] = append(byMedia[l.MediaID], l.Name)
	}

	for _, row := range rows {
		tags := byMedia[row.ID]
		if tags == nil {
			tags = []string{}
		}

		out = append(out, MediaWithTags{Media: row, Tags: tags})
	}

	return out, nil
}
