package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) MediaFetch(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	id, ok := idParam(c)
	if !ok {
		return
	}

	row, err := a.Manager.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "Failed to fetch media")
		return
	}

	c.JSON(http.StatusOK, row)
}
