package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type folderCreateBody struct {
	Name string `json:"name"`
}

func (a *API) FolderCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data folderCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	folder, err := a.Manager.CreateFolder(c.Request.Context(), userID, data.Name)
	if err != nil {
		respondError(c, err, "Failed to create folder")
		return
	}

	c.JSON(http.StatusCreated, folder)
}
