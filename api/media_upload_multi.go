package api

import (
	"net/http"
	"os"

	"mediavault/media-api/media"
	"mediavault/media-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) MediaUploadMulti(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed multipart form",
			"requestID": requestID,
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No files provided",
			"requestID": requestID,
		})
		return
	}

	folderID, err := folderIDForm(c.PostForm("folder_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "folder_id is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	batch := make([]media.BatchFile, 0, len(files))

	// Spool everything first so a validation failure rejects the batch
	// before anything is placed
	for _, fh := range files {
		code, f, err := validators.FileValidator(fh)
		if err != nil {
			c.JSON(code, gin.H{
				"error":     err.Error() + ": " + fh.Filename,
				"requestID": requestID,
			})
			return
		}

		temp, err := spoolToTemp(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to spool upload to temp file", zap.String("requestID", requestID), zap.Error(err))
			return
		}
		defer os.Remove(temp)

		batch = append(batch, media.BatchFile{
			SourcePath:   temp,
			OriginalName: fh.Filename,
		})
	}

	created, err := a.Manager.CreateBatch(c.Request.Context(), userID, folderID, batch)
	if err != nil {
		// Media created before the failure stay, same as single
		// uploads that already committed
		respondError(c, err, "Failed to create media batch")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Files uploaded",
		"media":   created,
	})
}
