package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nesba5git/onpointflies/internal/models"
	"github.com/nesba5git/onpointflies/internal/users"
)

func rolesTestRouter(t *testing.T) (*gin.Engine, *users.Service) {
	t.Helper()
	svc := users.NewService(users.NewMemoryStore())
	g := gin.New()
	NewRolesHandler(svc).Register(g.Group("/api"))
	return g, svc
}

func TestRolesList(t *testing.T) {
	g, svc := rolesTestRouter(t)
	require.NoError(t, svc.Store().Set(context.Background(), "s1", map[string]interface{}{
		"auth0_id": "s1", "email": "a@x.com", "role": "admin",
	}))

	w := do(g, http.MethodGet, "/api/roles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []*models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "admin", list[0].Role)
}

func TestRolesUpdate(t *testing.T) {
	g, svc := rolesTestRouter(t)
	require.NoError(t, svc.Store().Set(context.Background(), "s1", map[string]interface{}{
		"auth0_id": "s1", "role": "user",
	}))

	w := do(g, http.MethodPut, "/api/roles", `{"auth0_id":"s1","role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Role updated")

	u, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "admin", u.Role)
}

func TestRolesUpdate_Validation(t *testing.T) {
	g, _ := rolesTestRouter(t)

	w := do(g, http.MethodPut, "/api/roles", `{"auth0_id":"s1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPut, "/api/roles", `{"auth0_id":"s1","role":"superuser"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRolesUpdate_UnknownUser(t *testing.T) {
	g, _ := rolesTestRouter(t)

	w := do(g, http.MethodPut, "/api/roles", `{"auth0_id":"nobody","role":"admin"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "User not found")
}
