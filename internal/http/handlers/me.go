package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's full account: balance, level, stats, job, daily
// task state.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	acc, err := h.Eco.GetAccount(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"account": acc,
	})
}
