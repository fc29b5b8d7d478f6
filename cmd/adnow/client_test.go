package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/hooks"
	"github.com/cristianoliveira/adnow/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Fetch(context.Context) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingSource) String() string { return "failing" }

// fakeClient serves the embedded catalog and a memory-backed store.
type fakeClient struct {
	catalogs *catalog.Store
	store    *storage.Store
	hooks    *hooks.Runner
	sort     domain.SortKey
}

func newFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend())
	store.Init()
	return &fakeClient{
		catalogs: catalog.NewStore(catalog.EmbeddedSource()),
		store:    store,
		hooks:    &hooks.Runner{Dir: t.TempDir(), Mode: hooks.FailAbort, Timeout: 2 * time.Second},
		sort:     domain.SortByName,
	}
}

func newFailingClient(t *testing.T) *fakeClient {
	t.Helper()
	c := newFakeClient(t)
	c.catalogs = catalog.NewStore(failingSource{})
	return c
}

func (f *fakeClient) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	if c, ok := f.catalogs.Catalog(); ok {
		return c, nil
	}
	return f.catalogs.Load(ctx)
}

func (f *fakeClient) CatalogStore() *catalog.Store   { return f.catalogs }
func (f *fakeClient) Persistence() *storage.Store    { return f.store }
func (f *fakeClient) Hooks() *hooks.Runner           { return f.hooks }
func (f *fakeClient) IsFavorite(id int) bool         { return f.store.IsFavorite(id) }
func (f *fakeClient) DefaultSort() domain.SortKey    { return f.sort }
func (f *fakeClient) ConfiguredSort() domain.SortKey { return f.sort }
func (f *fakeClient) DebounceWindow() time.Duration  { return time.Millisecond }
func (f *fakeClient) Version() string                { return "1.2.3" }

// execute runs c with args and returns what it wrote to stdout.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func decodeIDs(t *testing.T, data string) []int {
	t.Helper()
	var sellers []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &sellers))
	ids := make([]int, len(sellers))
	for i, s := range sellers {
		ids[i] = s.ID
	}
	return ids
}
