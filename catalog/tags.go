package catalog

import (
	"context"
	"strings"

	"mediavault/media-api/model"

	"gorm.io/gorm/clause"
)

// ResolveOrCreateTag returns the id of the tag with the given name,
// creating the row on first use. The name is lower-cased first so
// resolution is idempotent across casing, and the insert uses
// ON CONFLICT DO NOTHING so concurrent calls with the same name can't
// race each other into duplicates
func (s *Store) ResolveOrCreateTag(ctx context.Context, name string) (uint, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	tag := model.Tag{Name: name}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&tag).
		Error
	if err != nil {
		return 0, err
	}

	// Conflict means another caller won the insert. Look the row up
	if tag.ID == 0 {
		err = s.db.WithContext(ctx).
			Where("name = ?", name).
			First(&tag).
			Error
		if err != nil {
			return 0, err
		}
	}

	return tag.ID, nil
}

// LinkTag attaches a tag to a media row. Linking an already-linked pair
// is a no-op, not an error
func (s *Store) LinkTag(ctx context.Context, mediaID, tagID uint) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.MediaTag{MediaID: mediaID, TagID: tagID}).
		Error
}

// UnlinkAllTags drops every tag link of a media row. Idempotent
func (s *Store) UnlinkAllTags(ctx context.Context, mediaID uint) error {
	return s.db.WithContext(ctx).
		Where("media_id = ?", mediaID).
		Delete(&model.MediaTag{}).
		Error
}
