package api

import (
	"net/http"

	"mediavault/media-api/media"

	"github.com/gin-gonic/gin"
)

type mediaEditBody struct {
	Description string   `json:"description"`
	FolderID    *uint    `json:"folder_id"`
	Tags        []string `json:"tags"`
}

func (a *API) MediaEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var data mediaEditBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	updated, err := a.Manager.Update(c.Request.Context(), userID, id, media.UpdateInput{
		Description: data.Description,
		FolderID:    data.FolderID,
		Tags:        data.Tags,
	})
	if err != nil {
		respondError(c, err, "Failed to update media")
		return
	}

	c.JSON(http.StatusOK, updated)
}
