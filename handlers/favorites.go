package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/shop"
)

func (h *ShopHandler) GetFavorites(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	favs, err := h.svc.Favorites(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if favs == nil {
		favs = []shop.Favorite{}
	}
	c.JSON(http.StatusOK, favs)
}

func (h *ShopHandler) AddFavorite(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var p shop.FlyPattern
	if err := c.ShouldBindJSON(&p); err != nil || p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := h.svc.AddFavorite(c.Request.Context(), sub, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

func (h *ShopHandler) RemoveFavorite(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fly name parameter"})
		return
	}
	if err := h.svc.RemoveFavorite(c.Request.Context(), sub, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}
