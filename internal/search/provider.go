// Package search provides the matching predicate used to filter sellers.
// Providers compare a case-folded query against a configurable set of
// seller fields so that CLI, TUI and HTTP binders share one definition of
// "matches".
package search

import (
	"github.com/cristianoliveira/adnow/internal/domain"
)

// Searchable field names.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldProducts    = "products"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the seller matches the query.
	// The query is expected to be already case-folded (see domain.Fold).
	Match(seller domain.Seller, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	Fields []string // Fields to search in (default: all fields)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		Fields: []string{FieldName, FieldDescription, FieldLocation, FieldProducts},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithFields sets the fields to search in.
// Valid fields: "name", "description", "location", "products".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
