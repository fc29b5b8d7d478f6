package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Criteria holds the transient search and category selection for one filter pass.
// SearchTerm is always stored case-folded; use NewCriteria to build one.
type Criteria struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category,omitempty"`
}

// NewCriteria builds criteria from raw user input.
// The search term is trimmed and case-folded; the category is kept verbatim
// because category matching is exact.
func NewCriteria(searchTerm, category string) Criteria {
	return Criteria{
		SearchTerm: Fold(strings.TrimSpace(searchTerm)),
		Category:   category,
	}
}

// IsEmpty returns true if the criteria select the whole catalog.
func (c Criteria) IsEmpty() bool {
	return c.SearchTerm == "" && c.Category == ""
}

// WithSearchTerm returns a copy with a new search term.
func (c Criteria) WithSearchTerm(term string) Criteria {
	c.SearchTerm = Fold(strings.TrimSpace(term))
	return c
}

// WithCategory returns a copy with a new category filter. Empty clears it.
func (c Criteria) WithCategory(category string) Criteria {
	c.Category = category
	return c
}

// Fold returns the case-folded form of s used for all search comparisons.
func Fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}
