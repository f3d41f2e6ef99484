package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"mediavault/media-api/media"
	"mediavault/media-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) MediaUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.FileValidator(fh)
	if err != nil {
		c.JSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	folderID, err := folderIDForm(c.PostForm("folder_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "folder_id is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	temp, err := spoolToTemp(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to spool upload to temp file", zap.String("requestID", requestID), zap.Error(err))
		return
	}
	defer os.Remove(temp)

	created, err := a.Manager.Create(c.Request.Context(), userID, media.CreateInput{
		SourcePath:   temp,
		OriginalName: fh.Filename,
		FolderID:     folderID,
		Type:         c.PostForm("type"),
		Description:  c.PostForm("description"),
		RawTags:      c.PostForm("tags"),
	})
	if err != nil {
		respondError(c, err, "Failed to create media")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded",
		"media":   created,
	})
}

// spoolToTemp writes the multipart part to a temp file so the
// consistency core only ever deals with files already on disk
func spoolToTemp(f multipart.File) (string, error) {
	temp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", err
	}
	defer temp.Close()

	if _, err := io.Copy(temp, f); err != nil {
		os.Remove(temp.Name())
		return "", err
	}

	return temp.Name(), nil
}
