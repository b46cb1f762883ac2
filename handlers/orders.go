package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/shop"
)

type placeOrderRequest struct {
	Notes string `json:"notes"`
}

func (h *ShopHandler) GetOrders(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	orders, err := h.svc.Orders(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []shop.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *ShopHandler) PlaceOrder(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var req placeOrderRequest
	_ = c.ShouldBindJSON(&req)
	order, err := h.svc.PlaceOrder(c.Request.Context(), sub, req.Notes)
	if err != nil {
		if errors.Is(err, shop.ErrEmptyList) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shopping list is empty. Add items before placing an order."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "order": order})
}
