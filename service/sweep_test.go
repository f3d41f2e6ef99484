package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediavault/media-api/catalog"
	"mediavault/media-api/model"
	"mediavault/media-api/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestSweeper(t *testing.T) (*Sweeper, *catalog.Store) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	err = conn.AutoMigrate(model.User{}, model.Folder{}, model.Media{}, model.Tag{}, model.MediaTag{})
	require.NoError(t, err)

	cat := catalog.New(conn)
	s := NewSweeper(cat, t.TempDir(), time.Hour)
	return s, cat
}

func writeBlob(t *testing.T, root, userID, name string) string {
	t.Helper()

	dir := filepath.Join(root, userID, storage.GeneralFolder)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("blob"), 0o644))
	return p
}

func TestSweepRemovesAgedOrphans(t *testing.T) {
	s, _ := newTestSweeper(t)

	orphan := writeBlob(t, s.Root, "alice", "orphan.png")

	// Pretend an hour and change passed since placement
	s.now = func() time.Time { return time.Now().Add(61 * time.Minute) }

	removed, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(orphan)
	assert.True(t, os.IsNotExist(err))
}

func TestSweepKeepsReferencedBlobs(t *testing.T) {
	s, cat := newTestSweeper(t)

	kept := writeBlob(t, s.Root, "alice", "kept.png")

	row := model.Media{
		UserID:   "alice",
		Filename: "kept.png",
		FileURL:  storage.URLPrefix + "/alice/" + storage.GeneralFolder + "/kept.png",
		Type:     model.MediaTypeImage,
	}
	require.NoError(t, cat.CreateMedia(context.Background(), &row))

	s.now = func() time.Time { return time.Now().Add(61 * time.Minute) }

	removed, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = os.Stat(kept)
	assert.NoError(t, err)
}

func TestSweepKeepsFreshOrphans(t *testing.T) {
	s, _ := newTestSweeper(t)

	fresh := writeBlob(t, s.Root, "alice", "inflight.png")

	// Real clock: the file is seconds old, well inside the grace period
	removed, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
