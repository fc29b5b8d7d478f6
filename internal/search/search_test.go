package search

import (
	"testing"

	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testSeller = domain.Seller{
	ID:          1,
	Name:        "Kente Boutique",
	Description: "Handwoven kente cloth and modern African fashion",
	Category:    "Fashion",
	Location:    "Kumasi, Ghana",
	Rating:      4.5,
	Products:    []string{"Kente Cloth", "Dresses", "Scarves"},
}

// TestDefaultOptions verifies default option values.
func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, []string{"name", "description", "location", "products"}, opts.Fields)
}

// TestSubstringProvider tests substring-based search.
func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		query    string
		expected bool
	}{
		{name: "empty query matches all", provider: NewSubstringProvider(), query: "", expected: true},
		{name: "substring in name", provider: NewSubstringProvider(), query: "boutique", expected: true},
		{name: "substring in description", provider: NewSubstringProvider(), query: "handwoven", expected: true},
		{name: "substring in location", provider: NewSubstringProvider(), query: "kumasi", expected: true},
		{name: "substring in product", provider: NewSubstringProvider(), query: "scarv", expected: true},
		{name: "substring not found", provider: NewSubstringProvider(), query: "pottery", expected: false},
		{name: "spans words in name", provider: NewSubstringProvider(), query: "kente bout", expected: true},
		{
			name:     "restricted to name field",
			provider: NewSubstringProvider(WithFields([]string{FieldName})),
			query:    "kumasi",
			expected: false,
		},
		{
			name:     "restricted to products field",
			provider: NewSubstringProvider(WithFields([]string{FieldProducts})),
			query:    "dresses",
			expected: true,
		},
		{
			name:     "unknown field ignored",
			provider: NewSubstringProvider(WithFields([]string{"rating"})),
			query:    "4.5",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.Match(testSeller, tt.query))
		})
	}
}

// TestSubstringProviderCaseFolding checks that stored fields are folded before comparison.
func TestSubstringProviderCaseFolding(t *testing.T) {
	p := NewSubstringProvider()
	seller := domain.Seller{ID: 2, Name: "STRASSE Goods", Category: "Crafts"}

	assert.True(t, p.Match(seller, domain.Fold("strasse")))
	assert.True(t, p.Match(seller, domain.Fold("GOODS")))
	assert.False(t, p.Match(seller, "GOODS"), "query must be folded by the caller")
}

func TestSubstringProviderName(t *testing.T) {
	assert.Equal(t, "substring", NewSubstringProvider().Name())
}

// TestMockProvider tests the mock provider implementation.
func TestMockProvider(t *testing.T) {
	mockProvider := new(MockProvider)

	mockProvider.On("Name").Return("mock-provider")
	mockProvider.On("Match", testSeller, "test").Return(true)
	mockProvider.On("Match", testSeller, "other").Return(false)

	assert.Equal(t, "mock-provider", mockProvider.Name())
	assert.True(t, mockProvider.Match(testSeller, "test"))
	assert.False(t, mockProvider.Match(testSeller, "other"))

	mockProvider.AssertExpectations(t)
}
