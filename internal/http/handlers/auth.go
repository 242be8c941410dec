package handlers

import (
	"crypto/subtle"
	"net/http"

	"gamecoins_bot/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	APIKey string `json:"api_key" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

// Auth exchanges the chat collaborator's API key plus a user id for a JWT
// scoped to that user. The collaborator calls this once per user session.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.Cfg.BotAPIKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	token, err := service.GenerateJWT(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": req.UserID,
		"owner":   h.Cfg.IsOwner(req.UserID),
	})
}
