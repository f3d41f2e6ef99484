package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) FolderList(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	folders, err := a.Manager.ListFolders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list folders")
		return
	}

	c.JSON(http.StatusOK, folders)
}
