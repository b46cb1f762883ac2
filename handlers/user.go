package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/models"
	"github.com/nesba5git/onpointflies/internal/users"
	"github.com/nesba5git/onpointflies/pkg/logger"
	"github.com/nesba5git/onpointflies/pkg/middleware"
)

// UserHandler serves the caller's own user record.
type UserHandler struct {
	users *users.Service
}

func NewUserHandler(u *users.Service) *UserHandler {
	return &UserHandler{users: u}
}

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/user", h.Sync)
}

// Sync returns the caller's stored record. The auth middleware has
// already merged and persisted it during role resolution; when storage
// is down we still answer from the resolved principal so the client can
// proceed.
func (h *UserHandler) Sync(c *gin.Context) {
	p := middleware.PrincipalFromContext(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	rec, err := h.users.GetRecord(c.Request.Context(), p.Sub)
	if err != nil {
		logger.Warnf("user record read failed for %s: %v", p.Sub, err)
	}
	if rec != nil {
		c.JSON(http.StatusOK, rec)
		return
	}
	c.JSON(http.StatusOK, &models.User{
		Auth0ID: p.Sub,
		Email:   p.Email,
		Name:    p.Name,
		Picture: p.Picture,
		Role:    p.Role,
	})
}
