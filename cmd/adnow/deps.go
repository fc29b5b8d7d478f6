package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/config"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/engine"
	"github.com/cristianoliveira/adnow/internal/hooks"
	"github.com/cristianoliveira/adnow/internal/settings"
	"github.com/cristianoliveira/adnow/internal/storage"
	"github.com/cristianoliveira/adnow/internal/version"
)

// appClient owns the catalog store and the persistence layer for one process.
// Both are opened on first use so that global flags are parsed by then.
type appClient struct {
	once    sync.Once
	catalog *catalog.Store
	store   *storage.Store
	hooks   *hooks.Runner
}

var coreClient = &appClient{}

func (c *appClient) init() {
	c.once.Do(func() {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		colors.SetQuiet(config.GetBool("quiet", false))
		engine.SetDefault(engine.New(engine.WithLocale(config.Get("locale", "en"))))

		source := flagOr("catalog", config.Get("catalog_source", ""))
		c.catalog = catalog.NewStore(catalog.SourceFor(source))

		backend := flagOr("storage", config.Get("storage_backend", storage.BackendSQLite))
		c.store = storage.NewStore(storage.NewForBackend(backend))
		c.store.Init()
		c.hooks = hooks.NewFromConfig()

		colors.StructuredDebug("cli", "init", "ready", nil, "", map[string]interface{}{
			"catalog": c.catalog.Source().String(),
			"storage": backend,
		})
	})
}

// flagOr returns the root persistent flag value, or fallback when unset.
func flagOr(name, fallback string) string {
	f := cmd.RootCmd.PersistentFlags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	if v := strings.TrimSpace(f.Value.String()); v != "" {
		return v
	}
	return fallback
}

// LoadCatalog fetches the catalog snapshot, reusing one already loaded.
func (c *appClient) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	c.init()
	if snapshot, ok := c.catalog.Catalog(); ok {
		return snapshot, nil
	}
	return c.catalog.Load(ctx)
}

// CatalogStore exposes the underlying store for long-running binders.
func (c *appClient) CatalogStore() *catalog.Store {
	c.init()
	return c.catalog
}

// Persistence returns the persistence layer.
func (c *appClient) Persistence() *storage.Store {
	c.init()
	return c.store
}

// Hooks returns the user script runner.
func (c *appClient) Hooks() *hooks.Runner {
	c.init()
	return c.hooks
}

// IsFavorite reports whether a seller is in the favorites set.
func (c *appClient) IsFavorite(id int) bool {
	return c.Persistence().IsFavorite(id)
}

// DefaultSort is the ordering used when a command names none: the stored
// preference, which the browser updates on every sort change.
func (c *appClient) DefaultSort() domain.SortKey {
	c.init()
	return settings.Load(c.store).SortBy
}

// ConfiguredSort is the default_sort config key, used by binders without
// per-user preferences.
func (c *appClient) ConfiguredSort() domain.SortKey {
	c.init()
	k, err := domain.ParseSortKey(config.Get("default_sort", "name"))
	if err != nil {
		return domain.SortByName
	}
	return k
}

// DebounceWindow is the search quiet window.
func (c *appClient) DebounceWindow() time.Duration {
	c.init()
	return time.Duration(config.GetInt("search_debounce_ms", 300)) * time.Millisecond
}

func (c *appClient) Version() string {
	return version.String()
}

// Close releases the persistence backend.
func (c *appClient) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
