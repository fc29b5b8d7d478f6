// Package format provides output formatting functionality for CLI commands.
// It includes formatters for different output styles of sellers and categories.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/adnow/internal/browser"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatSellers formats a slice of sellers and writes to the writer.
	FormatSellers(sellers []browser.SellerView, writer io.Writer) error

	// FormatCategories formats category facets and writes to the writer.
	FormatCategories(categories []browser.CategoryView, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays sellers with ID, name and rating.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays sellers in a table format with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact displays only seller names, one per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays sellers in JSON format.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the supported formatter types.
func FormatterTypes() []FormatterType {
	return []FormatterType{FormatterTypeTable, FormatterTypeSimple, FormatterTypeCompact, FormatterTypeJSON}
}

// ParseFormatterType resolves a formatter name, ignoring case.
func ParseFormatterType(name string) (FormatterType, error) {
	candidate := FormatterType(strings.ToLower(strings.TrimSpace(name)))
	for _, ft := range FormatterTypes() {
		if ft == candidate {
			return ft, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: table, simple, compact, json)", name)
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		// Default to table formatter for unknown types
		return NewTableFormatter()
	}
}
