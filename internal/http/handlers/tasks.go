package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tasks returns the caller's daily tasks with live progress.
func (h *Handler) Tasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	tasks, err := h.Eco.DailyTasks(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type TaskProgressRequest struct {
	Amount int `json:"amount"`
}

// TaskProgress advances a task counter on behalf of the chat collaborator
// (messages sent, commands used, reactions added). Amount defaults to 1.
func (h *Handler) TaskProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req TaskProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	advanced, err := h.Eco.UpdateTaskProgress(c.Request.Context(), userID, c.Param("id"), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advanced": advanced})
}

// TaskClaim pays out a completed daily task, once.
func (h *Handler) TaskClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	reward, err := h.Eco.ClaimTaskReward(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reward": reward})
}
