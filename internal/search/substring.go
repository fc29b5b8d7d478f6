package search

import (
	"strings"

	"github.com/cristianoliveira/adnow/internal/domain"
)

// SubstringProvider provides substring-based search.
// Matches if any configured field contains the query as a substring after
// case folding. There is no tokenization or fuzzy matching.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if the query is empty or any configured field contains it.
func (p *SubstringProvider) Match(seller domain.Seller, query string) bool {
	if query == "" {
		return true
	}

	for _, field := range p.opts.Fields {
		for _, value := range fieldValues(seller, field) {
			if value == "" {
				continue
			}
			if strings.Contains(domain.Fold(value), query) {
				return true
			}
		}
	}

	return false
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}

func fieldValues(seller domain.Seller, field string) []string {
	switch field {
	case FieldName:
		return []string{seller.Name}
	case FieldDescription:
		return []string{seller.Description}
	case FieldLocation:
		return []string{seller.Location}
	case FieldProducts:
		return seller.Products
	}
	return nil
}
