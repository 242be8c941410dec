package handlers

import (
	"net/http"

	"gamecoins_bot/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminProducts lists the whole catalog, disabled entries included.
func (h *Handler) AdminProducts(c *gin.Context) {
	products, err := h.Shop.Products(c.Request.Context(), true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AdminAddProduct creates a catalog entry.
func (h *Handler) AdminAddProduct(c *gin.Context) {
	var req service.NewProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	p, err := h.Shop.AddProduct(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// AdminEditProduct applies a partial product update. Unknown fields in the
// payload are ignored.
func (h *Handler) AdminEditProduct(c *gin.Context) {
	var req service.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	p, err := h.Shop.EditProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AdminRemoveProduct deletes a catalog entry. Purchase history survives.
func (h *Handler) AdminRemoveProduct(c *gin.Context) {
	if err := h.Shop.RemoveProduct(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": c.Param("id")})
}

// AdminShopStats returns aggregate catalog and purchase counters.
func (h *Handler) AdminShopStats(c *gin.Context) {
	stats, err := h.Shop.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type AdminCoinsRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// AdminAddCoins credits coins to a user's account with full earn-side
// effects (XP, levels).
func (h *Handler) AdminAddCoins(c *gin.Context) {
	var req AdminCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	newBalance, err := h.Eco.Credit(c.Request.Context(), req.UserID, req.Amount, "admin_add")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID, "new_balance": newBalance})
}

// AdminRemoveCoins debits coins from a user's account.
func (h *Handler) AdminRemoveCoins(c *gin.Context) {
	var req AdminCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	newBalance, err := h.Eco.Debit(c.Request.Context(), req.UserID, req.Amount, "admin_remove")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID, "new_balance": newBalance})
}

type AdminSetCoinsRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"min=0"`
}

// AdminSetCoins pins a user's balance to an exact value. XP, level and
// stats are left untouched.
func (h *Handler) AdminSetCoins(c *gin.Context) {
	var req AdminSetCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := h.Eco.SetBalance(c.Request.Context(), req.UserID, req.Amount); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID, "new_balance": req.Amount})
}
