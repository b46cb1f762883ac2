package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/auth"
	"github.com/nesba5git/onpointflies/internal/users"
)

// RolesHandler is the admin-only user/role management surface.
type RolesHandler struct {
	users *users.Service
}

func NewRolesHandler(u *users.Service) *RolesHandler {
	return &RolesHandler{users: u}
}

// Register mounts the routes on an admin-gated group.
func (h *RolesHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/roles", h.List)
	rg.PUT("/roles", h.Update)
}

// List returns all known users with their roles.
func (h *RolesHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

type updateRoleRequest struct {
	Auth0ID string `json:"auth0_id" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// Update sets a user's persisted role.
func (h *RolesHandler) Update(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth0_id and role are required"})
		return
	}
	if req.Role != auth.RoleAdmin && req.Role != auth.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Role must be "admin" or "user"`})
		return
	}

	u, err := h.users.SetRole(c.Request.Context(), req.Auth0ID, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user": u})
}
