package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) MediaDelete(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.Manager.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "Failed to delete media")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
