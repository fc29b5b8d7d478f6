package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) (*Backend, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	b, err := NewBackend(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	return b, mr
}

func TestGetSetDelete(t *testing.T) {
	b, mr := newTestBackend(t)
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "adnow_preferences")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "adnow_preferences", `{"sortBy":"rating"}`))
	v, ok, err := b.Get(ctx, "adnow_preferences")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"sortBy":"rating"}`, v)

	stored, err := mr.Get("adnow_preferences")
	require.NoError(t, err)
	assert.Equal(t, `{"sortBy":"rating"}`, stored)
	assert.Zero(t, mr.TTL("adnow_preferences"))

	require.NoError(t, b.Delete(ctx, "adnow_preferences"))
	assert.False(t, mr.Exists("adnow_preferences"))
}

func TestNewBackendUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewBackend(context.Background(), Options{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis storage: ping")
}

func TestServerErrorsSurface(t *testing.T) {
	b, mr := newTestBackend(t)
	mr.SetError("LOADING")

	_, _, err := b.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, b.Set(context.Background(), "k", "v"))
}
