package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int    `json:"total"`
	Label string `json:"label"`
}

func setupRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client), mr
}

func TestRedisGetSet(t *testing.T) {
	c, mr := setupRedis(t)
	ctx := context.Background()

	var got payload
	hit, err := c.Get(ctx, DashboardPrefix+"stats", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, DashboardPrefix+"stats", payload{Total: 3, Label: "Theft"}, time.Minute))
	hit, err = c.Get(ctx, DashboardPrefix+"stats", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Total: 3, Label: "Theft"}, got)

	mr.FastForward(2 * time.Minute)
	hit, err = c.Get(ctx, DashboardPrefix+"stats", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisInvalidatePrefix(t *testing.T) {
	c, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, DashboardPrefix+"stats", payload{Total: 1}, time.Minute))
	require.NoError(t, c.Set(ctx, DashboardPrefix+"charts", payload{Total: 2}, time.Minute))
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, c.Invalidate(ctx, DashboardPrefix))
	assert.False(t, mr.Exists(DashboardPrefix+"stats"))
	assert.False(t, mr.Exists(DashboardPrefix+"charts"))
	assert.True(t, mr.Exists("other:key"))

	require.NoError(t, c.Invalidate(ctx, DashboardPrefix))
}

func TestRedisGetCorruptValue(t *testing.T) {
	c, mr := setupRedis(t)
	require.NoError(t, mr.Set(DashboardPrefix+"stats", "{not json"))
	var got payload
	hit, err := c.Get(context.Background(), DashboardPrefix+"stats", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "::not a url")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	hit, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx, "k"))
}
