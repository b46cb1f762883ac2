package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/shop"
)

type addListItemRequest struct {
	shop.FlyPattern
	Price float64 `json:"price"`
}

type setQuantityRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (h *ShopHandler) GetShoppingList(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	items, err := h.svc.ShoppingList(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []shop.ListItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *ShopHandler) AddToShoppingList(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var req addListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	qty, err := h.svc.AddToList(c.Request.Context(), sub, req.FlyPattern, req.Price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if qty > 1 {
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated", "quantity": qty})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to shopping list"})
}

func (h *ShopHandler) UpdateShoppingList(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := h.svc.SetQuantity(c.Request.Context(), sub, req.Name, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
}

func (h *ShopHandler) RemoveFromShoppingList(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	if c.Query("all") == "true" {
		if err := h.svc.ClearList(c.Request.Context(), sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shopping list cleared"})
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fly name parameter"})
		return
	}
	if err := h.svc.RemoveFromList(c.Request.Context(), sub, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from shopping list"})
}
