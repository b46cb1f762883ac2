package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nesba5git/onpointflies/internal/users"
)

func TestUserSync_ReturnsStoredRecord(t *testing.T) {
	svc := users.NewService(users.NewMemoryStore())
	require.NoError(t, svc.Store().Set(context.Background(), "s1", map[string]interface{}{
		"auth0_id":    "s1",
		"email":       "x@example.com",
		"role":        "admin",
		"preferences": map[string]interface{}{"theme": "dark"},
	}))

	g := gin.New()
	api := g.Group("/api", asPrincipal("s1"))
	NewUserHandler(svc).Register(api)

	w := do(g, http.MethodGet, "/api/user", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	require.Equal(t, "admin", rec["role"])
	// the raw record comes back, custom fields included
	require.Equal(t, map[string]interface{}{"theme": "dark"}, rec["preferences"])
}

func TestUserSync_FallsBackToPrincipal(t *testing.T) {
	// empty store: the handler answers from the resolved principal
	svc := users.NewService(users.NewMemoryStore())

	g := gin.New()
	api := g.Group("/api", asPrincipal("s1"))
	NewUserHandler(svc).Register(api)

	w := do(g, http.MethodGet, "/api/user", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	require.Equal(t, "s1", rec["auth0_id"])
	require.Equal(t, "user", rec["role"])
}
