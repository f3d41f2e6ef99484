package media

import (
	"context"
	"fmt"
	"strings"

	"mediavault/media-api/catalog"
	"mediavault/media-api/model"
	"mediavault/media-api/util"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// CreateInput describes a single already-received upload. SourcePath
// has to point at a file resident on local disk; the transport layer is
// responsible for getting it there
type CreateInput struct {
	SourcePath   string
	OriginalName string
	FolderID     *uint
	Type         string
	Description  string
	RawTags      string
}

// Create runs the create protocol: validate the target folder, place
// the blob, then insert the row and its tag links in one transaction.
// The blob exists before the row does; if the transaction fails the
// placed file is left behind as an orphan for the sweep to collect,
// which beats the inverse failure of a row whose file never existed
func (m *Manager) Create(ctx context.Context, owner string, in CreateInput) (catalog.MediaWithTags, error) {
	if in.SourcePath == "" || in.OriginalName == "" {
		return catalog.MediaWithTags{}, fmt.Errorf("%w: missing source file", ErrValidation)
	}

	if in.FolderID != nil {
		if _, err := m.Catalog.FolderByID(ctx, owner, *in.FolderID); err != nil {
			return catalog.MediaWithTags{}, mapNotFound(err)
		}
	}

	mediaType := in.Type
	if mediaType != model.MediaTypeImage && mediaType != model.MediaTypeVideo {
		mediaType = detectType(in.SourcePath)
	}

	storedName, fileURL, err := m.Blobs.Place(owner, in.FolderID, in.SourcePath, in.OriginalName)
	if err != nil {
		return catalog.MediaWithTags{}, fmt.Errorf("%w: %v", ErrFilesystem, err)
	}

	row := model.Media{
		UserID:      owner,
		FolderID:    in.FolderID,
		Filename:    storedName,
		FileURL:     fileURL,
		Type:        mediaType,
		Description: in.Description,
	}

	tags := util.ParseTags(in.RawTags)

	err = m.Catalog.Transaction(ctx, func(tx *catalog.Store) error {
		if err := tx.CreateMedia(ctx, &row); err != nil {
			return err
		}

		return applyTags(ctx, tx, row.ID, tags)
	})
	if err != nil {
		// The placed blob is now an orphan. Accepted leak: the sweep
		// will pick it up once it ages past the grace period
		zap.L().Warn("Media insert failed after blob placement, leaving orphan blob",
			zap.String("fileURL", fileURL),
			zap.Error(err))

		return catalog.MediaWithTags{}, err
	}

	return catalog.MediaWithTags{Media: row, Tags: tags}, nil
}

// BatchFile is one entry of a multi-file create
type BatchFile struct {
	SourcePath   string
	OriginalName string
}

// CreateBatch creates several media in one call, all into the same
// folder, untagged and with an empty description. Inserts run
// sequentially; on a mid-batch failure the media created so far stay
// and are returned alongside the error
func (m *Manager) CreateBatch(ctx context.Context, owner string, folderID *uint, files []BatchFile) ([]catalog.MediaWithTags, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrValidation)
	}

	created := make([]catalog.MediaWithTags, 0, len(files))

	for _, f := range files {
		row, err := m.Create(ctx, owner, CreateInput{
			SourcePath:   f.SourcePath,
			OriginalName: f.OriginalName,
			FolderID:     folderID,
		})
		if err != nil {
			return created, err
		}

		created = append(created, row)
	}

	return created, nil
}

// detectType sniffs the file contents. Anything that isn't video
// counts as an image, mirroring the upload form's two choices
func detectType(path string) string {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return model.MediaTypeImage
	}

	if strings.HasPrefix(mime.String(), "video/") {
		return model.MediaTypeVideo
	}

	return model.MediaTypeImage
}
