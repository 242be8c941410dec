package handlers

import (
	"errors"
	"net/http"

	"gamecoins_bot/internal/service"

	"github.com/gin-gonic/gin"
)

// Jobs lists the job catalog with the caller's live eligibility.
func (h *Handler) Jobs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	jobs, err := h.Eco.Jobs(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// JobApply assigns the caller to a job if they meet its requirements.
func (h *Handler) JobApply(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if err := h.Eco.AssignJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": c.Param("id")})
}

// Work runs one shift of the caller's job and pays the salary.
func (h *Handler) Work(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	res, err := h.Eco.Work(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrOnCooldown) {
			cooldownResponse(c, res.Remaining)
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
