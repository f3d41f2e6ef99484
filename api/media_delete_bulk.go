package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type bulkDeleteBody struct {
	IDs []uint `json:"ids"`
}

func (a *API) MediaDeleteBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data bulkDeleteBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Request body must contain an array of IDs",
			"requestID": requestID,
		})
		return
	}

	res, err := a.Manager.DeleteBulk(c.Request.Context(), userID, data.IDs)
	if err != nil {
		respondError(c, err, "Failed to bulk delete media")
		return
	}

	c.JSON(http.StatusOK, res)
}
