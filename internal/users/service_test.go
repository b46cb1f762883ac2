package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestService_GetMissing(t *testing.T) {
	svc := NewService(NewMemoryStore())
	u, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestService_SetRole(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", map[string]interface{}{
		"auth0_id":    "s1",
		"email":       "x@example.com",
		"role":        "user",
		"preferences": map[string]interface{}{"theme": "dark"},
	}))

	u, err := svc.SetRole(ctx, "s1", "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "admin", u.Role)
	require.Equal(t, "x@example.com", u.Email)

	// unrelated stored fields survive the role update
	rec, err := svc.GetRecord(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"theme": "dark"}, rec["preferences"])
	require.NotEmpty(t, rec["updated_at"])
}

func TestService_SetRoleMissingUser(t *testing.T) {
	svc := NewService(NewMemoryStore())
	u, err := svc.SetRole(context.Background(), "nobody", "admin")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestService_List(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", map[string]interface{}{"auth0_id": "s1", "role": "admin"}))
	require.NoError(t, store.Set(ctx, "s2", map[string]interface{}{"auth0_id": "s2"}))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	roles := map[string]string{}
	for _, u := range list {
		roles[u.Auth0ID] = u.Role
	}
	require.Equal(t, "admin", roles["s1"])
	require.Equal(t, "user", roles["s2"], "a record without a role reads as user")
}
