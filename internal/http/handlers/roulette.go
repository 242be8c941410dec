package handlers

import (
	"net/http"

	"gamecoins_bot/internal/game"

	"github.com/gin-gonic/gin"
)

// RouletteBetRequest places a bet for the next spin.
type RouletteBetRequest struct {
	Bet     int64  `json:"bet" binding:"required,min=1"`
	BetType string `json:"bet_type" binding:"required"`
	Value   string `json:"value"`
	Number  int    `json:"number"`
}

// RouletteBet registers the caller's bet. Coins move at spin time.
func (h *Handler) RouletteBet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req RouletteBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	b, err := h.Roulette.PlaceBet(c.Request.Context(), userID, req.Bet, game.RouletteBetType(req.BetType), req.Value, req.Number)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RouletteSpin resolves the caller's pending bet.
func (h *Handler) RouletteSpin(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	out, err := h.Roulette.Spin(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// RouletteState returns the caller's pending bet, if any.
func (h *Handler) RouletteState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	b, ok := h.Roulette.PendingFor(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no roulette bet placed"})
		return
	}
	c.JSON(http.StatusOK, b)
}
