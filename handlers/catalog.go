package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/shop"
)

// CatalogHandler serves the fly-pattern catalog. Reads are public,
// writes are restricted to admins by the route wiring.
type CatalogHandler struct {
	svc *shop.Service
}

func NewCatalogHandler(svc *shop.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type updatePatternRequest struct {
	OriginalName string `json:"originalName"`
	shop.FlyPattern
}

func (h *CatalogHandler) List(c *gin.Context) {
	patterns, err := h.svc.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if patterns == nil {
		patterns = []shop.FlyPattern{}
	}
	c.JSON(http.StatusOK, patterns)
}

func (h *CatalogHandler) Add(c *gin.Context) {
	var p shop.FlyPattern
	if err := c.ShouldBindJSON(&p); err != nil || p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	patterns, err := h.svc.AddPattern(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fly added to catalog", "flies": patterns})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var req updatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	original := req.OriginalName
	if original == "" {
		original = req.Name
	}
	patterns, err := h.svc.UpdatePattern(c.Request.Context(), original, req.FlyPattern)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fly not found in catalog"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fly updated", "flies": patterns})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fly name parameter"})
		return
	}
	patterns, err := h.svc.DeletePattern(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fly not found in catalog"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fly removed from catalog", "flies": patterns})
}
