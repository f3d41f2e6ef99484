package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"mediavault/media-api/catalog"
	"mediavault/media-api/media"
	"mediavault/media-api/model"
	"mediavault/media-api/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestManager(t *testing.T) *media.Manager {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	err = conn.AutoMigrate(model.User{}, model.Folder{}, model.Media{}, model.Tag{}, model.MediaTag{})
	require.NoError(t, err)

	blobs, err := storage.New(t.TempDir())
	require.NoError(t, err)

	return media.NewManager(catalog.New(conn), blobs)
}

func makeSource(t *testing.T, name string) string {
	t.Helper()

	src := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(src, []byte("blob data"), 0o644))
	return src
}

// blobPath maps a served file URL back to its location on disk
func blobPath(m *media.Manager, fileURL string) string {
	return filepath.Join(m.Blobs.Root(), strings.TrimPrefix(fileURL, storage.URLPrefix+"/"))
}

func createOne(t *testing.T, m *media.Manager, owner string, folderID *uint, rawTags string) catalog.MediaWithTags {
	t.Helper()

	row, err := m.Create(context.Background(), owner, media.CreateInput{
		SourcePath:   makeSource(t, "pic.png"),
		OriginalName: "pic.png",
		FolderID:     folderID,
		Type:         model.MediaTypeImage,
		RawTags:      rawTags,
	})
	require.NoError(t, err)
	return row
}

func TestCreatePlacesBlobAndRow(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	row, err := m.Create(ctx, "alice", media.CreateInput{
		SourcePath:   makeSource(t, "pic.png"),
		OriginalName: "pic.png",
		Type:         model.MediaTypeImage,
		Description:  "first",
		RawTags:      "Cat, dog, cat",
	})
	require.NoError(t, err)

	assert.NotZero(t, row.ID)
	assert.Equal(t, []string{"cat", "dog"}, row.Tags)

	// Blob exists where the URL says it does
	_, err = os.Stat(blobPath(m, row.FileURL))
	assert.NoError(t, err)

	// Row round-trips with the same tags
	got, err := m.Get(ctx, "alice", row.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Description)
	assert.Equal(t, []string{"cat", "dog"}, got.Tags)
}

func TestCreateIntoForeignFolder(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	folder, err := m.CreateFolder(ctx, "bob", "not yours")
	require.NoError(t, err)

	src := makeSource(t, "pic.png")
	_, err = m.Create(ctx, "alice", media.CreateInput{
		SourcePath:   src,
		OriginalName: "pic.png",
		FolderID:     &folder.ID,
	})
	assert.ErrorIs(t, err, media.ErrNotFound)

	// Rejected before the blob moved anywhere
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestCreateMissingSource(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Create(context.Background(), "alice", media.CreateInput{})
	assert.ErrorIs(t, err, media.ErrValidation)
}

func TestCreateBatch(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	folder, err := m.CreateFolder(ctx, "alice", "batch")
	require.NoError(t, err)

	created, err := m.CreateBatch(ctx, "alice", &folder.ID, []media.BatchFile{
		{SourcePath: makeSource(t, "a.png"), OriginalName: "a.png"},
		{SourcePath: makeSource(t, "b.png"), OriginalName: "b.png"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, row := range created {
		require.NotNil(t, row.FolderID)
		assert.Equal(t, folder.ID, *row.FolderID)
	}

	_, err = m.CreateBatch(ctx, "alice", nil, nil)
	assert.ErrorIs(t, err, media.ErrValidation)
}

func TestUpdateReplacesTags(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	row := createOne(t, m, "alice", nil, "old, stale")

	folder, err := m.CreateFolder(ctx, "alice", "trips")
	require.NoError(t, err)

	got, err := m.Update(ctx, "alice", row.ID, media.UpdateInput{
		Description: "reworked",
		FolderID:    &folder.ID,
		Tags:        []string{"Fresh", "fresh", "new"},
	})
	require.NoError(t, err)

	assert.Equal(t, "reworked", got.Description)
	assert.Equal(t, []string{"fresh", "new"}, got.Tags)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, folder.ID, *got.FolderID)

	// Folder reassignment never touches the blob
	assert.Equal(t, row.FileURL, got.FileURL)
	_, err = os.Stat(blobPath(m, row.FileURL))
	assert.NoError(t, err)
}

func TestUpdateForeignMedia(t *testing.T) {
	m := newTestManager(t)

	row := createOne(t, m, "alice", nil, "")

	_, err := m.Update(context.Background(), "bob", row.ID, media.UpdateInput{Description: "hijack"})
	assert.ErrorIs(t, err, media.ErrNotFound)
}

func TestSearchEmptyQuery(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Search(context.Background(), "alice", "")
	assert.ErrorIs(t, err, media.ErrValidation)
}

func TestDeleteRemovesBlobAndRow(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	row := createOne(t, m, "alice", nil, "cat")

	require.NoError(t, m.Delete(ctx, "alice", row.ID))

	_, err := os.Stat(blobPath(m, row.FileURL))
	assert.True(t, os.IsNotExist(err))

	_, err = m.Get(ctx, "alice", row.ID)
	assert.ErrorIs(t, err, media.ErrNotFound)
}

func TestDeleteForeignMedia(t *testing.T) {
	m := newTestManager(t)

	row := createOne(t, m, "alice", nil, "")

	err := m.Delete(context.Background(), "bob", row.ID)
	assert.ErrorIs(t, err, media.ErrNotFound)

	// Blob untouched
	_, err = os.Stat(blobPath(m, row.FileURL))
	assert.NoError(t, err)
}

func TestDeleteBulkSkipsForeignIDs(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	a := createOne(t, m, "alice", nil, "")
	b := createOne(t, m, "alice", nil, "")
	foreign := createOne(t, m, "bob", nil, "")

	res, err := m.DeleteBulk(ctx, "alice", []uint{a.ID, b.ID, foreign.ID, 9999})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint{a.ID, b.ID}, res.DeletedIDs)
	assert.Empty(t, res.FailedBlobs)

	_, err = m.Get(ctx, "bob", foreign.ID)
	assert.NoError(t, err)
	_, err = os.Stat(blobPath(m, foreign.FileURL))
	assert.NoError(t, err)
}

func TestDeleteBulkEmptyIDs(t *testing.T) {
	m := newTestManager(t)

	_, err := m.DeleteBulk(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, media.ErrValidation)
}

func TestDeleteBulkToleratesMissingBlobs(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	a := createOne(t, m, "alice", nil, "")
	b := createOne(t, m, "alice", nil, "")

	// Simulate an earlier interrupted delete
	require.NoError(t, os.Remove(blobPath(m, a.FileURL)))

	res, err := m.DeleteBulk(ctx, "alice", []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, res.DeletedIDs)
	assert.Empty(t, res.FailedBlobs)
}

func TestDeleteFolderCascade(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	folder, err := m.CreateFolder(ctx, "alice", "doomed")
	require.NoError(t, err)

	rows := []catalog.MediaWithTags{
		createOne(t, m, "alice", &folder.ID, "trip"),
		createOne(t, m, "alice", &folder.ID, "trip"),
		createOne(t, m, "alice", &folder.ID, ""),
	}

	// Two of three files already missing must not stop the cascade
	require.NoError(t, os.Remove(blobPath(m, rows[0].FileURL)))
	require.NoError(t, os.Remove(blobPath(m, rows[1].FileURL)))

	require.NoError(t, m.DeleteFolder(ctx, "alice", folder.ID))

	for _, row := range rows {
		_, err := m.Get(ctx, "alice", row.ID)
		assert.ErrorIs(t, err, media.ErrNotFound)
	}

	folders, err := m.ListFolders(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, folders)

	_, err = os.Stat(filepath.Join(m.Blobs.Root(), "alice", strconv.FormatUint(uint64(folder.ID), 10)))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFolderForeign(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	folder, err := m.CreateFolder(ctx, "alice", "mine")
	require.NoError(t, err)

	assert.ErrorIs(t, m.DeleteFolder(ctx, "bob", folder.ID), media.ErrNotFound)

	folders, err := m.ListFolders(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestCreateFolderEmptyName(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CreateFolder(context.Background(), "alice", "  ")
	assert.ErrorIs(t, err, media.ErrValidation)
}
