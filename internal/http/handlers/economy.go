package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TransferRequest struct {
	To     string `json:"to" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// Transfer moves coins from the caller to another user.
func (h *Handler) Transfer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := h.Eco.Transfer(c.Request.Context(), userID, req.To, req.Amount); err != nil {
		fail(c, err)
		return
	}

	acc, err := h.Eco.GetAccount(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"to":          req.To,
		"amount":      req.Amount,
		"new_balance": acc.Coins,
	})
}

// Leaderboard returns the top accounts in a category. Category defaults to
// coins, limit to 10.
func (h *Handler) Leaderboard(c *gin.Context) {
	category := c.DefaultQuery("category", "coins")

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.Eco.Leaderboard(c.Request.Context(), category, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"entries":  entries,
	})
}

// MyRank returns the caller's 1-based position in a category.
func (h *Handler) MyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	category := c.DefaultQuery("category", "coins")
	rank, found, err := h.Eco.UserRank(c.Request.Context(), userID, category)
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not ranked"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"rank":     rank,
	})
}
