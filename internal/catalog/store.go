// Package catalog loads and caches the seller catalog snapshot.
package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/metrics"
)

// Store holds the current catalog snapshot for a session.
// Load is the only operation that fetches; it is never triggered implicitly.
type Store struct {
	source Source

	mu      sync.RWMutex
	current *domain.Catalog
}

// NewStore creates a store reading from source.
func NewStore(source Source) *Store {
	if source == nil {
		source = EmbeddedSource()
	}
	return &Store{source: source}
}

// Source returns the configured source.
func (s *Store) Source() Source {
	return s.source
}

// Load fetches and parses the catalog and installs it as the current snapshot.
// On failure the previous snapshot, if any, stays installed and a *LoadError
// is returned. There are no retries.
func (s *Store) Load(ctx context.Context) (*domain.Catalog, error) {
	c, err := s.fetch(ctx)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues(metrics.ResultFailure).Inc()
		colors.StructuredError("catalog", "load", "failed", err, s.source.String(), nil)
		return nil, err
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()

	metrics.CatalogLoads.WithLabelValues(metrics.ResultSuccess).Inc()
	colors.StructuredInfo("catalog", "load", "completed", nil, s.source.String(),
		map[string]interface{}{"sellers": c.Len(), "categories": len(c.Categories())})
	return c, nil
}

func (s *Store) fetch(ctx context.Context) (*domain.Catalog, error) {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Op: OpFetch, Source: s.source.String(), Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = s.source.String()
			return nil, le
		}
		return nil, &LoadError{Op: OpDecode, Source: s.source.String(), Err: err}
	}
	return c, nil
}

// Catalog returns the installed snapshot, or nil and false before a successful load.
func (s *Store) Catalog() (*domain.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Loaded reports whether a snapshot is installed.
func (s *Store) Loaded() bool {
	_, ok := s.Catalog()
	return ok
}
