package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) MediaSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No search query provided",
			"requestID": requestID,
		})
		return
	}

	rows, err := a.Manager.Search(c.Request.Context(), userID, query)
	if err != nil {
		respondError(c, err, "Failed to search media")
		return
	}

	c.JSON(http.StatusOK, rows)
}
