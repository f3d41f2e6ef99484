package api

import (
	"errors"
	"net/http"
	"strconv"

	"mediavault/media-api/media"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps manager errors onto HTTP responses. Filesystem
// details never reach the client; they get a generic retry message
// while the real error goes to the log
func respondError(c *gin.Context, err error, logMsg string) {
	requestID := c.MustGet("requestID").(string)

	switch {
	case errors.Is(err, media.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Not found. It either doesn't exist or you don't own it",
			"requestID": requestID,
		})
	case errors.Is(err, media.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
	case errors.Is(err, media.ErrFilesystem):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Storage is temporarily unavailable. Please try again",
			"requestID": requestID,
		})

		zap.L().Error(logMsg, zap.String("requestID", requestID), zap.Error(err))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error(logMsg, zap.String("requestID", requestID), zap.Error(err))
	}
}

// idParam parses the :id route parameter
func idParam(c *gin.Context) (uint, bool) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "ID is not a valid integer",
			"requestID": requestID,
		})
		return 0, false
	}

	return uint(id), true
}

// folderIDForm parses an optional folder_id form value. An empty value
// means unfiled
func folderIDForm(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}

	u := uint(id)
	return &u, nil
}
