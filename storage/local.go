// Package storage owns the on-disk placement of media blobs. The layout
// mirrors the catalog's two-level hierarchy: every blob lives under
// <root>/<userID>/<folderID|general>/<storedFilename> and is addressed
// publicly by the matching /uploads/... URL.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// URLPrefix is the public prefix every file URL starts with
	URLPrefix = "/uploads"

	// GeneralFolder holds blobs of unfiled media
	GeneralFolder = "general"

	nameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrPathEscape is returned when a file URL resolves outside the
// storage root. Such URLs never come from this package, so an escape
// means the catalog row was tampered with
var ErrPathEscape = errors.New("file URL escapes the storage root")

type Store struct {
	root string
}

// New creates the storage root if needed. Creation is recursive and
// idempotent
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root, %w", err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root, %w", err)
	}

	return &Store{root: abs}, nil
}

// Root returns the absolute storage root, mainly so the router can
// serve it statically
func (s *Store) Root() string { return s.root }

// FolderKey maps an optional folder ID to its directory name
func FolderKey(folderID *uint) string {
	if folderID == nil {
		return GeneralFolder
	}

	return strconv.FormatUint(uint64(*folderID), 10)
}

// Place moves an already-received source file into its final location
// and returns the stored filename plus the public file URL. The stored
// name carries a millisecond timestamp and a short random suffix so
// concurrent uploads of the same original name into the same folder
// can't collide
func (s *Store) Place(userID string, folderID *uint, srcPath, originalName string) (storedName, fileURL string, err error) {
	dir := filepath.Join(s.root, userID, FolderKey(folderID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create media directory, %w", err)
	}

	suffix, err := gonanoid.Generate(nameCharset, 6)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate filename suffix, %w", err)
	}

	base := filepath.Base(filepath.Clean(originalName))
	if base == "." || base == string(os.PathSeparator) {
		base = "file"
	}

	storedName = fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), suffix, base)

	if err := moveFile(srcPath, filepath.Join(dir, storedName)); err != nil {
		return "", "", fmt.Errorf("failed to place blob, %w", err)
	}

	fileURL = path.Join(URLPrefix, userID, FolderKey(folderID), storedName)
	return storedName, fileURL, nil
}

// Remove deletes the blob behind a file URL. A missing blob is not an
// error: deletion has to stay retryable after partial failures, so the
// second call simply reports removed=false
func (s *Store) Remove(fileURL string) (removed bool, err error) {
	full, err := s.resolve(fileURL)
	if err != nil {
		return false, err
	}

	err = os.Remove(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to remove blob, %w", err)
	}

	return true, nil
}

// RemoveFolder recursively deletes a folder's directory tree. An absent
// directory is a no-op
func (s *Store) RemoveFolder(userID string, folderID uint) error {
	dir := filepath.Join(s.root, userID, strconv.FormatUint(uint64(folderID), 10))

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove folder directory, %w", err)
	}

	return nil
}

// resolve maps a public file URL back to an absolute path, rejecting
// anything that would land outside the storage root
func (s *Store) resolve(fileURL string) (string, error) {
	// Clean against an absolute URL path first so any ".." segments
	// are folded away before the prefix check
	clean := path.Clean("/" + strings.TrimPrefix(fileURL, "/"))

	rel := strings.TrimPrefix(clean, URLPrefix+"/")
	if rel == clean || rel == "" {
		return "", ErrPathEscape
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))

	check, err := filepath.Rel(s.root, full)
	if err != nil || check == ".." || strings.HasPrefix(check, ".."+string(os.PathSeparator)) {
		return "", ErrPathEscape
	}

	return full, nil
}

// moveFile renames when possible and falls back to copy+remove for
// cross-device moves (temp dirs commonly live on another filesystem)
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
