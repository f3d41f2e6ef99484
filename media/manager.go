// Package media is the consistency core of the library. It sequences
// the catalog (relational, authoritative) and the blob store
// (filesystem, follows the catalog) so that partial failures degrade to
// harmless orphan blobs instead of rows whose files are gone. Every
// blob operation it triggers is idempotent, so any step can be retried.
package media

import (
	"context"
	"errors"
	"fmt"

	"mediavault/media-api/catalog"
	"mediavault/media-api/model"
	"mediavault/media-api/storage"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both "row doesn't exist" and "row belongs to
	// someone else". The two are indistinguishable on purpose so
	// existence can't be probed across users
	ErrNotFound = errors.New("media not found")

	// ErrValidation marks malformed caller input
	ErrValidation = errors.New("invalid input")

	// ErrFilesystem marks a blob store failure (I/O, permissions,
	// path escape)
	ErrFilesystem = errors.New("filesystem failure")
)

type Manager struct {
	Catalog *catalog.Store
	Blobs   *storage.Store
}

func NewManager(cat *catalog.Store, blobs *storage.Store) *Manager {
	return &Manager{
		Catalog: cat,
		Blobs:   blobs,
	}
}

func (m *Manager) List(ctx context.Context, owner string) ([]catalog.MediaWithTags, error) {
	return m.Catalog.Media(ctx, owner)
}

// Search matches against descriptions and tag names. Results are plain
// rows without tag aggregation, same as the listing the search page
// renders from
func (m *Manager) Search(ctx context.Context, owner, query string) ([]model.Media, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrValidation)
	}

	return m.Catalog.SearchMedia(ctx, owner, query)
}

func (m *Manager) Get(ctx context.Context, owner string, id uint) (catalog.MediaWithTags, error) {
	row, err := m.Catalog.MediaByID(ctx, owner, id)
	if err != nil {
		return catalog.MediaWithTags{}, mapNotFound(err)
	}

	return row, nil
}

// applyTags resolves every normalized tag name and links it to the
// media row. Meant to run on a transaction-bound catalog
func applyTags(ctx context.Context, tx *catalog.Store, mediaID uint, tags []string) error {
	for _, name := range tags {
		tagID, err := tx.ResolveOrCreateTag(ctx, name)
		if err != nil {
			return err
		}

		if err := tx.LinkTag(ctx, mediaID, tagID); err != nil {
			return err
		}
	}

	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}
