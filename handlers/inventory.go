package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/shop"
)

// InventoryHandler serves the physical stock list. Reads are public,
// writes require a signed-in user.
type InventoryHandler struct {
	svc *shop.Service
}

func NewInventoryHandler(svc *shop.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

type updateStockRequest struct {
	ID *int64 `json:"id"`
	shop.StockItemPatch
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.Inventory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []shop.StockItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Add(c *gin.Context) {
	var item shop.StockItem
	if err := c.ShouldBindJSON(&item); err != nil || item.Name == "" || item.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and category are required"})
		return
	}
	items, err := h.svc.AddStockItem(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item added", "inventory": items})
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item id is required to update"})
		return
	}
	items, err := h.svc.UpdateStockItem(c.Request.Context(), *req.ID, req.StockItemPatch)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item updated", "inventory": items})
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item id is required"})
		return
	}
	items, err := h.svc.DeleteStockItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted", "inventory": items})
}
