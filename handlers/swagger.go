package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>onpointflies — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document covering the service's main endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "onpointflies", "version": "v0.1.0" },
  "paths": {
    "/api/auth-config": {
      "get": { "summary": "Public Auth0 client configuration", "responses": { "200": { "description": "domain and clientId" } } }
    },
    "/api/user": {
      "get": { "summary": "Resolve and sync the caller's user record", "responses": { "200": { "description": "user profile with resolved role" }, "401": { "description": "authentication failed" } } }
    },
    "/api/roles": {
      "get": { "summary": "List all users with roles (admin)", "responses": { "200": { "description": "users" }, "403": { "description": "not an admin" } } },
      "put": { "summary": "Update a user's role (admin)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"auth0Id":{"type":"string"},"role":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated user" }, "404": { "description": "user not found" } } }
    },
    "/api/favorites": {
      "get": { "summary": "List favorite fly patterns", "responses": { "200": { "description": "favorites" } } },
      "post": { "summary": "Add a favorite", "responses": { "200": { "description": "added" } } },
      "delete": { "summary": "Remove a favorite by name", "responses": { "200": { "description": "removed" } } }
    },
    "/api/shopping-list": {
      "get": { "summary": "Get the shopping list", "responses": { "200": { "description": "items" } } },
      "post": { "summary": "Add an item or bump its quantity", "responses": { "200": { "description": "added or updated" } } },
      "put": { "summary": "Set an item's quantity", "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Remove an item, or everything with ?all=true", "responses": { "200": { "description": "removed" } } }
    },
    "/api/orders": {
      "get": { "summary": "List the caller's orders", "responses": { "200": { "description": "orders" } } },
      "post": { "summary": "Place an order from the shopping list", "responses": { "200": { "description": "order placed" }, "400": { "description": "shopping list is empty" } } }
    },
    "/api/catalog": {
      "get": { "summary": "Public fly-pattern catalog", "responses": { "200": { "description": "patterns" } } },
      "post": { "summary": "Add a pattern (admin)", "responses": { "200": { "description": "updated catalog" } } },
      "put": { "summary": "Update a pattern (admin)", "responses": { "200": { "description": "updated catalog" }, "404": { "description": "pattern not found" } } },
      "delete": { "summary": "Remove a pattern by name (admin)", "responses": { "200": { "description": "updated catalog" }, "404": { "description": "pattern not found" } } }
    },
    "/api/inventory": {
      "get": { "summary": "Public stock list", "responses": { "200": { "description": "stock items" } } },
      "post": { "summary": "Add a stock item", "responses": { "200": { "description": "updated inventory" }, "400": { "description": "name and category are required" } } },
      "put": { "summary": "Patch a stock item by id", "responses": { "200": { "description": "updated inventory" }, "404": { "description": "item not found" } } },
      "delete": { "summary": "Remove a stock item by ?id=", "responses": { "200": { "description": "updated inventory" }, "404": { "description": "item not found" } } }
    },
    "/api/upload": {
      "get": { "summary": "List uploaded assets (admin)", "responses": { "200": { "description": "objects" } } },
      "post": { "summary": "Upload a base64 asset (admin)", "responses": { "200": { "description": "stored" }, "400": { "description": "bad payload or disallowed type" } } }
    },
    "/api/auth-debug": {
      "get": { "summary": "Auth diagnostic report", "responses": { "200": { "description": "diagnostics" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
