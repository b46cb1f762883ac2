package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/shop"
	"github.com/nesba5git/onpointflies/internal/users"
	"github.com/nesba5git/onpointflies/pkg/middleware"
)

// ShopHandler serves favorites, shopping lists, orders and the catalog.
type ShopHandler struct {
	svc   *shop.Service
	users *users.Service
}

func NewShopHandler(s *shop.Service, u *users.Service) *ShopHandler {
	return &ShopHandler{svc: s, users: u}
}

// Register mounts the authenticated routes. The public catalog read and
// the admin-gated catalog writes are registered separately in main.
func (h *ShopHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.GetFavorites)
	rg.POST("/favorites", h.AddFavorite)
	rg.DELETE("/favorites", h.RemoveFavorite)

	rg.GET("/shopping-list", h.GetShoppingList)
	rg.POST("/shopping-list", h.AddToShoppingList)
	rg.PUT("/shopping-list", h.UpdateShoppingList)
	rg.DELETE("/shopping-list", h.RemoveFromShoppingList)

	rg.GET("/orders", h.GetOrders)
	rg.POST("/orders", h.PlaceOrder)
}

// subject returns the caller's subject ID after checking that a user
// record exists, matching the original API contract: list endpoints
// require a prior /api/user sync.
func (h *ShopHandler) subject(c *gin.Context) (string, bool) {
	p := middleware.PrincipalFromContext(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return "", false
	}
	rec, err := h.users.GetRecord(c.Request.Context(), p.Sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", false
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found. Call /api/user first."})
		return "", false
	}
	return p.Sub, true
}
