package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlackjackStartRequest opens a hand.
type BlackjackStartRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

// BlackjackStart deals a new hand against the dealer.
func (h *Handler) BlackjackStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BlackjackStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	st, err := h.Blackjack.Start(c.Request.Context(), userID, req.Bet)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// BlackjackHit deals one more card to the caller's hand.
func (h *Handler) BlackjackHit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	st, err := h.Blackjack.Hit(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// BlackjackStand ends the caller's turn and resolves the hand.
func (h *Handler) BlackjackStand(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	st, err := h.Blackjack.Stand(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// BlackjackDouble doubles the stake and deals exactly one card.
func (h *Handler) BlackjackDouble(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	st, err := h.Blackjack.Double(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// BlackjackSplit doubles the stake on an initial pair.
func (h *Handler) BlackjackSplit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	st, err := h.Blackjack.Split(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// BlackjackInsurance takes the side bet against a dealer natural.
func (h *Handler) BlackjackInsurance(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	st, err := h.Blackjack.Insurance(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// BlackjackState returns the caller's live hand.
func (h *Handler) BlackjackState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	st, err := h.Blackjack.State(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
