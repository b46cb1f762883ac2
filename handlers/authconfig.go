package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/config"
)

// RegisterAuthConfig exposes the public Auth0 settings the frontend
// needs to start a login. Nothing secret lives here.
func RegisterAuthConfig(rg *gin.RouterGroup, cfg *config.Config) {
	rg.GET("/auth-config", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=3600")
		c.JSON(http.StatusOK, gin.H{
			"domain":   cfg.Auth0.Domain,
			"clientId": cfg.Auth0.ClientID,
		})
	})
}
