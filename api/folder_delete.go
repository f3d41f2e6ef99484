package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) FolderDelete(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.Manager.DeleteFolder(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "Failed to delete folder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted"})
}
