// Package engine implements the filter-sort pipeline over a catalog snapshot.
//
// Select filters a catalog by criteria, preserving catalog order. Sort
// returns a new, stably ordered slice. Query always filters before sorting.
// None of the functions mutate their inputs.
package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/search"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine filters and sorts sellers. The zero value is not usable; use New.
type Engine struct {
	provider search.Provider
	locale   language.Tag

	mu       sync.Mutex
	collator *collate.Collator
}

// Option configures an Engine.
type Option func(*Engine)

// WithProvider sets the search provider used by Select.
func WithProvider(p search.Provider) Option {
	return func(e *Engine) {
		if p != nil {
			e.provider = p
		}
	}
}

// WithLocale sets the collation locale used for name ordering.
// Unparseable locales fall back to English.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		tag, err := language.Parse(locale)
		if err != nil {
			tag = language.English
		}
		e.locale = tag
	}
}

// New creates an engine with a substring provider and English collation by default.
func New(opts ...Option) *Engine {
	e := &Engine{
		provider: search.NewSubstringProvider(),
		locale:   language.English,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.collator = collate.New(e.locale, collate.IgnoreCase)
	return e
}

// Locale returns the collation locale.
func (e *Engine) Locale() string {
	return e.locale.String()
}

// Select returns the sellers matching criteria, in catalog order.
// A seller matches when the search term is empty or the provider matches it,
// and the category filter is unset or equals the seller category exactly.
func (e *Engine) Select(catalog *domain.Catalog, criteria domain.Criteria) []domain.Seller {
	result := make([]domain.Seller, 0)
	for _, s := range catalog.Sellers() {
		if criteria.Category != "" && s.Category != criteria.Category {
			continue
		}
		if !e.provider.Match(s, criteria.SearchTerm) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// Sort returns a new slice ordered by key. Equal elements keep their input order.
func (e *Engine) Sort(sellers []domain.Seller, key domain.SortKey) ([]domain.Seller, error) {
	less, err := e.comparator(key)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Seller, len(sellers))
	copy(result, sellers)

	// The collator keeps internal buffers and is not safe for concurrent use.
	e.mu.Lock()
	defer e.mu.Unlock()
	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result, nil
}

// Query filters the catalog and then sorts the filtered subset.
func (e *Engine) Query(catalog *domain.Catalog, criteria domain.Criteria, key domain.SortKey) ([]domain.Seller, error) {
	if !key.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownSortKey, int(key))
	}
	return e.Sort(e.Select(catalog, criteria), key)
}

func (e *Engine) comparator(key domain.SortKey) (func(a, b domain.Seller) bool, error) {
	switch key {
	case domain.SortByName:
		return func(a, b domain.Seller) bool {
			return e.collator.CompareString(a.Name, b.Name) < 0
		}, nil
	case domain.SortByRating:
		return func(a, b domain.Seller) bool {
			return a.Rating > b.Rating
		}, nil
	case domain.SortByNewest:
		return func(a, b domain.Seller) bool {
			return a.JoinedDate.After(b.JoinedDate)
		}, nil
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrUnknownSortKey, int(key))
}

var (
	defaultMu     sync.RWMutex
	defaultEngine = New()
)

// SetDefault replaces the engine used by the package-level functions.
func SetDefault(e *Engine) {
	if e == nil {
		return
	}
	defaultMu.Lock()
	defaultEngine = e
	defaultMu.Unlock()
}

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultEngine
}

// Select filters with the default engine.
func Select(catalog *domain.Catalog, criteria domain.Criteria) []domain.Seller {
	return Default().Select(catalog, criteria)
}

// Sort orders with the default engine.
func Sort(sellers []domain.Seller, key domain.SortKey) ([]domain.Seller, error) {
	return Default().Sort(sellers, key)
}

// Query filters then sorts with the default engine.
func Query(catalog *domain.Catalog, criteria domain.Criteria, key domain.SortKey) ([]domain.Seller, error) {
	return Default().Query(catalog, criteria, key)
}
