package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShopProducts lists enabled products sorted by price.
func (h *Handler) ShopProducts(c *gin.Context) {
	products, err := h.Shop.Products(c.Request.Context(), false)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ShopBuy purchases a product for the caller.
func (h *Handler) ShopBuy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	res, err := h.Shop.Buy(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// MyPurchases lists the caller's entitlements, newest first.
func (h *Handler) MyPurchases(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	purchases, err := h.Shop.UserPurchases(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}
