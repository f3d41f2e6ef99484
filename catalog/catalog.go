// Package catalog is the relational side of the media library: users,
// folders, media, tags and their links. It knows nothing about the
// filesystem; every mutation here is owner-scoped and the multi-row
// ones run in a single transaction.
package catalog

import (
	"context"

	"mediavault/media-api/model"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a transaction-bound Store so callers can
// compose several catalog operations into one atomic unit. Nested calls
// reuse gorm's savepoint handling
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) CreateFolder(ctx context.Context, owner, name string) (model.Folder, error) {
	folder := model.Folder{
		UserID: owner,
		Name:   name,
	}

	err := s.db.WithContext(ctx).Create(&folder).Error
	return folder, err
}

// Folders lists a user's folders, newest first
func (s *Store) Folders(ctx context.Context, owner string) ([]model.Folder, error) {
	folders := make([]model.Folder, 0)

	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC, id DESC").
		Find(&folders).
		Error

	return folders, err
}

func (s *Store) FolderByID(ctx context.Context, owner string, id uint) (model.Folder, error) {
	var folder model.Folder

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		First(&folder).
		Error

	return folder, err
}

// DeleteFolder removes the folder row only. It does not cascade: the
// caller has to have cleaned up the folder's media first
func (s *Store) DeleteFolder(ctx context.Context, owner string, id uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		Delete(&model.Folder{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
