// Package service hosts background maintenance jobs
package service

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"mediavault/media-api/catalog"
	"mediavault/media-api/storage"

	"go.uber.org/zap"
)

// Sweeper reconciles the blob store against the catalog. Creates place
// the blob before committing the row, so a failed create leaves an
// orphan file behind; the sweep collects those. Blobs younger than
// MinAge are left alone because they may belong to a create that is
// still in flight between placement and commit
type Sweeper struct {
	Catalog *catalog.Store
	Root    string
	MinAge  time.Duration

	now func() time.Time
}

func NewSweeper(cat *catalog.Store, root string, minAge time.Duration) *Sweeper {
	return &Sweeper{
		Catalog: cat,
		Root:    root,
		MinAge:  minAge,
		now:     time.Now,
	}
}

// Run walks the storage root and removes every file old enough that no
// media row references. Returns how many blobs were removed
func (s *Sweeper) Run(ctx context.Context) (removed int, err error) {
	cutoff := s.now().Add(-s.MinAge)

	err = filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// A directory can vanish mid-walk when a folder delete
			// races the sweep
			if os.IsNotExist(walkErr) {
				return nil
			}

			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}

			return err
		}

		if info.ModTime().After(cutoff) {
			return nil
		}

		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			return err
		}

		fileURL := path.Join(storage.URLPrefix, filepath.ToSlash(rel))

		exists, err := s.Catalog.FileURLExists(ctx, fileURL)
		if err != nil {
			return err
		}

		if exists {
			return nil
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}

		zap.L().Info("Removed orphan blob", zap.String("fileURL", fileURL))
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("orphan sweep failed, %w", err)
	}

	return removed, nil
}
