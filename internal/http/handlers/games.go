package handlers

import (
	"net/http"

	"gamecoins_bot/internal/service"

	"github.com/gin-gonic/gin"
)

// CoinflipRequest represents a coinflip play.
type CoinflipRequest struct {
	Bet    int64  `json:"bet" binding:"required,min=1"`
	Choice string `json:"choice" binding:"required"`
}

// Coinflip handles the coinflip endpoint.
func (h *Handler) Coinflip(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CoinflipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	out, err := h.Games.PlayCoinflip(c.Request.Context(), userID, req.Bet, req.Choice)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DiceRequest represents a dice play (guess 1-6).
type DiceRequest struct {
	Bet   int64 `json:"bet" binding:"required,min=1"`
	Guess int   `json:"guess" binding:"required,min=1,max=6"`
}

// Dice handles the dice endpoint.
func (h *Handler) Dice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req DiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	out, err := h.Games.PlayDice(c.Request.Context(), userID, req.Bet, req.Guess)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SlotsRequest represents a slots pull.
type SlotsRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

// Slots handles the slots endpoint.
func (h *Handler) Slots(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req SlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	out, err := h.Games.PlaySlots(c.Request.Context(), userID, req.Bet)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GameLimits returns the per-game bet ranges.
func (h *Handler) GameLimits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"limits": service.BetTable()})
}
