package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type wishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *handlers) viewWishlist(c *gin.Context) {
	entries, err := h.deps.Wishlist.List(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist_items": entries, "total_items": len(entries)})
}

func (h *handlers) addToWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		badRequest(c, "product id is required")
		return
	}
	total, err := h.deps.Wishlist.Add(c.Request.Context(), userIDFrom(c), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to wishlist", "total_items": total})
}

func (h *handlers) removeFromWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		badRequest(c, "product id is required")
		return
	}
	total, err := h.deps.Wishlist.Remove(c.Request.Context(), userIDFrom(c), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist", "total_items": total})
}
