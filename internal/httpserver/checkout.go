package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danrawss/techtrove/internal/domain"
	checkoutsvc "github.com/danrawss/techtrove/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func (h *handlers) viewCheckout(c *gin.Context) {
	summary, err := h.deps.Cart.Summary(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) checkout(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Step: string(checkoutsvc.StateValidating)})
		return
	}
	req, err := shippingFromBody(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Step: string(checkoutsvc.StateValidating)})
		return
	}

	res, err := h.deps.Checkout.Checkout(c.Request.Context(), userIDFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	switch res.Outcome {
	case checkoutsvc.OutcomeNotificationFailed:
		h.logger.Error("order committed without confirmation",
			"order_id", res.OrderID,
			"request_id", c.GetString(requestIDHeader),
			"error", res.NotifyErr,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        "Order placed but the confirmation email could not be sent",
			"step":         string(checkoutsvc.StateNotifying),
			"order_id":     res.OrderID,
			"committed":    true,
			"redirect_url": res.RedirectURL,
		})
	case checkoutsvc.OutcomeEmptyCart:
		c.JSON(http.StatusOK, gin.H{
			"message":     "Cart is empty, nothing to order",
			"total_price": res.Total.StringFixed(2),
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":      "Order placed successfully",
			"order_id":     res.OrderID,
			"total_price":  res.Total.StringFixed(2),
			"redirect_url": res.RedirectURL,
		})
	}
}

// shippingFromBody reads the checkout form leniently: numeric values such
// as a postal code sent as 12345 are taken as their text.
func shippingFromBody(body map[string]any) (domain.ShippingInfo, error) {
	var (
		info domain.ShippingInfo
		err  error
	)
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"fullName", &info.FullName},
		{"address", &info.Address},
		{"city", &info.City},
		{"postalCode", &info.PostalCode},
		{"phone", &info.Phone},
		{"email", &info.Email},
	} {
		if *f.dst, err = formText(f.name, body[f.name]); err != nil {
			return domain.ShippingInfo{}, err
		}
	}
	return info, nil
}

func formText(name string, v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%s must be text or a number", name)
	}
}

func (h *handlers) viewOrder(c *gin.Context) {
	rows, err := h.deps.Checkout.Order(c.Request.Context(), userIDFrom(c), c.Param("orderID"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id":    rows[0].OrderID,
		"order_time":  rows[0].OrderTime,
		"total_price": rows[0].OrderTotal.StringFixed(2),
		"shipping":    rows[0].Shipping,
		"items":       rows,
	})
}
