package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state", "adnow.db")
	b, err := NewBackend(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, b.Close())
	})

	return b
}

func TestNewBackendRejectsEmptyPath(t *testing.T) {
	_, err := NewBackend("  ")
	require.Error(t, err)
}

func TestNewBackendUsesWAL(t *testing.T) {
	b := newTestBackend(t)

	var mode string
	require.NoError(t, b.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
}

func TestGetSetDelete(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "adnow_visit_count")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, b.Set(ctx, "adnow_visit_count", "1"))
	require.NoError(t, b.Set(ctx, "adnow_visit_count", "2"))

	v, ok, err := b.Get(ctx, "adnow_visit_count")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", v)

	require.NoError(t, b.Delete(ctx, "adnow_visit_count"))
	require.NoError(t, b.Delete(ctx, "adnow_visit_count"))
	_, ok, err = b.Get(ctx, "adnow_visit_count")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "adnow.db")
	ctx := context.Background()

	b, err := NewBackend(dbPath)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "adnow_favorites", "[1,2]"))
	require.NoError(t, b.Close())

	b, err = NewBackend(dbPath)
	require.NoError(t, err)
	defer b.Close()

	v, ok, err := b.Get(ctx, "adnow_favorites")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[1,2]", v)
	require.Equal(t, dbPath, b.Path())
}

func TestClosedBackendErrors(t *testing.T) {
	b, err := NewBackend(filepath.Join(t.TempDir(), "adnow.db"))
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, _, err = b.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, b.Set(context.Background(), "k", "v"))
}
