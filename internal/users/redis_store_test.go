package users

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return NewRedisStore(client, "test:user:")
}

func TestRedisStore_SetGet(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	rec := map[string]interface{}{"auth0_id": "s1", "email": "x@example.com", "role": "admin"}
	require.NoError(t, s.Set(ctx, "s1", rec))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "x@example.com", got["email"])
	require.Equal(t, "admin", got["role"])
}

func TestRedisStore_GetMissing(t *testing.T) {
	s := newTestRedisStore(t)
	got, err := s.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisStore_List(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "s1", map[string]interface{}{"auth0_id": "s1"}))
	require.NoError(t, s.Set(ctx, "s2", map[string]interface{}{"auth0_id": "s2"}))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRedisStore_Ping(t *testing.T) {
	s := newTestRedisStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
