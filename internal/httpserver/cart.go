package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    *int   `json:"quantity"`
}

type removeFromCartRequest struct {
	ProductName string `json:"product_name"`
}

type updateCartRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

func (h *handlers) viewCart(c *gin.Context) {
	summary, err := h.deps.Cart.Summary(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "no data provided")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	var (
		total int
		err   error
	)
	if req.ProductID == 0 && req.ProductName != "" {
		total, err = h.deps.Cart.AddItemByName(c.Request.Context(), userIDFrom(c), req.ProductName, qty)
	} else {
		total, err = h.deps.Cart.AddItem(c.Request.Context(), userIDFrom(c), req.ProductID, qty)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "total_items": total})
}

func (h *handlers) removeFromCart(c *gin.Context) {
	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	items, price, err := h.deps.Cart.RemoveItem(c.Request.Context(), userIDFrom(c), req.ProductName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Item removed from cart",
		"total_items": items,
		"total_price": price.StringFixed(2),
	})
}

func (h *handlers) updateCart(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	summary, err := h.deps.Cart.UpdateQuantity(c.Request.Context(), userIDFrom(c), req.ProductName, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) counts(c *gin.Context) {
	counts, err := h.deps.Counts.Counts(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
