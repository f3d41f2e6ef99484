package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) MediaList(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	rows, err := a.Manager.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list media")
		return
	}

	c.JSON(http.StatusOK, rows)
}
