package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"mediavault/media-api/catalog"
	"mediavault/media-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestStore(t *testing.T) *catalog.Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	err = conn.AutoMigrate(model.User{}, model.Folder{}, model.Media{}, model.Tag{}, model.MediaTag{})
	require.NoError(t, err)

	return catalog.New(conn)
}

func seedMedia(t *testing.T, s *catalog.Store, owner, description string, folderID *uint) model.Media {
	t.Helper()

	m := model.Media{
		UserID:      owner,
		FolderID:    folderID,
		Filename:    "f.png",
		FileURL:     "/uploads/" + owner + "/general/f.png",
		Type:        model.MediaTypeImage,
		Description: description,
	}

	require.NoError(t, s.CreateMedia(context.Background(), &m))
	return m
}

func tagMedia(t *testing.T, s *catalog.Store, mediaID uint, names ...string) {
	t.Helper()

	for _, name := range names {
		id, err := s.ResolveOrCreateTag(context.Background(), name)
		require.NoError(t, err)
		require.NoError(t, s.LinkTag(context.Background(), mediaID, id))
	}
}

func TestFoldersNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.CreateFolder(ctx, "alice", "older")
	require.NoError(t, err)

	second, err := s.CreateFolder(ctx, "alice", "newer")
	require.NoError(t, err)

	folders, err := s.Folders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, second.ID, folders[0].ID)
	assert.Equal(t, first.ID, folders[1].ID)
}

func TestFolderOwnershipIsolation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	folder, err := s.CreateFolder(ctx, "alice", "private")
	require.NoError(t, err)

	_, err = s.FolderByID(ctx, "bob", folder.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = s.DeleteFolder(ctx, "bob", folder.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Still there for the real owner
	_, err = s.FolderByID(ctx, "alice", folder.ID)
	assert.NoError(t, err)
}

func TestResolveOrCreateTagIdempotentAcrossCase(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, err := s.ResolveOrCreateTag(ctx, "Vacation")
	require.NoError(t, err)

	b, err := s.ResolveOrCreateTag(ctx, "vacation")
	require.NoError(t, err)

	c, err := s.ResolveOrCreateTag(ctx, " VACATION ")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestLinkTagIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := seedMedia(t, s, "alice", "", nil)

	tagID, err := s.ResolveOrCreateTag(ctx, "dog")
	require.NoError(t, err)

	require.NoError(t, s.LinkTag(ctx, m.ID, tagID))
	require.NoError(t, s.LinkTag(ctx, m.ID, tagID))

	got, err := s.MediaByID(ctx, "alice", m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, got.Tags)
}

func TestMediaTagsNeverNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedMedia(t, s, "alice", "untagged", nil)

	rows, err := s.Media(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].Tags)
	assert.Empty(t, rows[0].Tags)
}

func TestMediaByIDOwnershipIsolation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := seedMedia(t, s, "alice", "mine", nil)

	_, err := s.MediaByID(ctx, "bob", m.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSearchMedia(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := seedMedia(t, s, "alice", "sunset beach", nil)
	tagMedia(t, s, m.ID, "vacation")

	other := seedMedia(t, s, "bob", "sunset beach", nil)
	tagMedia(t, s, other.ID, "vacation")

	for _, q := range []string{"beach", "VACATION", "Sunset"} {
		rows, err := s.SearchMedia(ctx, "alice", q)
		require.NoError(t, err)
		require.Len(t, rows, 1, "query %q", q)
		assert.Equal(t, m.ID, rows[0].ID)
	}

	rows, err := s.SearchMedia(ctx, "alice", "mountain")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchMediaDeduplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Matches via the description and two tags at once
	m := seedMedia(t, s, "alice", "beach day", nil)
	tagMedia(t, s, m.ID, "beachlife", "beachfront")

	rows, err := s.SearchMedia(ctx, "alice", "beach")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDeleteMediaRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mine := seedMedia(t, s, "alice", "mine", nil)
	tagMedia(t, s, mine.ID, "cat")
	theirs := seedMedia(t, s, "bob", "theirs", nil)

	urls, err := s.DeleteMediaRows(ctx, "alice", []uint{mine.ID, theirs.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, []string{mine.FileURL}, urls)

	_, err = s.MediaByID(ctx, "alice", mine.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Foreign row untouched
	_, err = s.MediaByID(ctx, "bob", theirs.ID)
	assert.NoError(t, err)

	// Links are gone too
	got, err := s.MediaByIDs(ctx, "alice", []uint{mine.ID})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateMediaKeepsFileURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	folder, err := s.CreateFolder(ctx, "alice", "trips")
	require.NoError(t, err)

	m := seedMedia(t, s, "alice", "old", nil)

	require.NoError(t, s.UpdateMedia(ctx, "alice", m.ID, "new", &folder.ID))

	got, err := s.MediaByID(ctx, "alice", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, folder.ID, *got.FolderID)
	assert.Equal(t, m.FileURL, got.FileURL)
}
