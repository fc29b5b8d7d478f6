package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleView() browser.SellerView {
	return browser.NewSellerView(domain.Seller{
		ID:          1,
		Name:        "Kente Boutique",
		Description: "Handwoven kente cloth",
		Category:    "Fashion",
		Location:    "Kumasi",
		Rating:      4.5,
		Products:    []string{"Kente stoles", "Dresses", "Bags", "Scarves"},
		Contacts:    domain.Contacts{WhatsApp: "+233 20 000 0001", Instagram: "@kente"},
		Verified:    true,
	})
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "33", ansiColorNumber(colors.Yellow))
	assert.Equal(t, "", ansiColorNumber(""))
	assert.Equal(t, "", ansiColorNumber("plain"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		width    int
		expected string
	}{
		{"fits", "Accra", 10, "Accra"},
		{"ellipsis", "Kente Boutique", 8, "Kente..."},
		{"tiny width", "Kente", 2, "Ke"},
		{"zero width keeps value", "Kente", 0, "Kente"},
		{"counts runes", "Ébène Crafts", 6, "Ébè..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.value, tt.width))
		})
	}
}

func TestHeaderShowsCountsAndSort(t *testing.T) {
	header := Header(HeaderState{
		Width:   120,
		Shown:   3,
		Total:   12,
		SortKey: domain.SortByRating,
		Categories: []browser.CategoryView{
			{Name: "Fashion", Icon: "👗", Count: 2, Selected: true},
			{Name: "Food", Icon: "🍲", Count: 1},
		},
		Category: "Fashion",
	})

	lines := strings.Split(header, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "3 of 12 sellers")
	assert.Contains(t, lines[0], "sort: rating")
	assert.Contains(t, lines[1], "[👗 Fashion (2)]")
	assert.Contains(t, lines[1], "🍲 Food (1)")
}

func TestCategoryBarMarksAllWhenUnfiltered(t *testing.T) {
	bar := CategoryBar([]browser.CategoryView{{Name: "Food", Count: 1}}, "", 80)

	assert.Contains(t, bar, "[All]")
	assert.Contains(t, bar, "Food (1)")
}

func TestCategoryBarFallsBackToNamesWhenNarrow(t *testing.T) {
	categories := []browser.CategoryView{
		{Name: "Fashion", Icon: "👗", Count: 2},
		{Name: "Electronics", Icon: "📱", Count: 4, Selected: true},
	}

	bar := CategoryBar(categories, "Electronics", 24)

	assert.LessOrEqual(t, lipgloss.Width(bar), 24)
	assert.True(t, strings.HasPrefix(bar, "All Fashion"))
}

func TestRowIncludesSellerColumns(t *testing.T) {
	row := Row(RowState{Seller: sampleView(), Width: 120})

	assert.Contains(t, row, "Kente Boutique ✓")
	assert.Contains(t, row, "Fashion")
	assert.Contains(t, row, "Kumasi")
	assert.Contains(t, row, "4.5 / 5.0")
	assert.Contains(t, row, "Kente stoles, Dresses, Bags")
	assert.NotContains(t, row, "Scarves")
}

func TestRowSelectedKeepsLayout(t *testing.T) {
	state := RowState{Seller: sampleView(), Width: 120}
	plain := Row(state)
	state.Selected = true
	selected := Row(state)

	assert.Equal(t, lipgloss.Width(plain), lipgloss.Width(selected))
	assert.Contains(t, selected, "Kente Boutique")
}

func TestCardHasFixedHeight(t *testing.T) {
	card := Card(RowState{Seller: sampleView(), Width: 80})

	assert.Equal(t, CardHeight, lipgloss.Height(card))
	assert.Contains(t, card, "Kente Boutique")
	assert.Contains(t, card, "Verified")
	assert.Contains(t, card, "Fashion · Kumasi")
}

func TestEmptyMessage(t *testing.T) {
	assert.Contains(t, Empty(), "No sellers found")
}

func TestOverlayShowsDetailAndFocus(t *testing.T) {
	overlay := Overlay(OverlayState{Seller: sampleView(), Focused: detail.FocusWhatsApp, Width: 100})

	assert.Contains(t, overlay, "Kente Boutique")
	assert.Contains(t, overlay, "Handwoven kente cloth")
	assert.Contains(t, overlay, "Scarves")
	assert.Contains(t, overlay, "https://wa.me/233200000001")
	assert.Contains(t, overlay, "https://instagram.com/kente")
	assert.Contains(t, overlay, "> WhatsApp")
	assert.Contains(t, overlay, "[ Close ]")
	assert.NotContains(t, overlay, "> [ Close ]")
	assert.Equal(t, OverlayWidth(100), lipgloss.Width(overlay))
}

func TestOverlayWidthBounds(t *testing.T) {
	assert.Equal(t, overlayMaxWidth+2, OverlayWidth(200))
	assert.Equal(t, 54+2, OverlayWidth(60))
	assert.Equal(t, overlayMinWidth+2, OverlayWidth(10))
}

func TestFooterModes(t *testing.T) {
	t.Run("browse", func(t *testing.T) {
		footer := Footer(FooterState{ViewMode: "grid", SearchTerm: "bead"})
		assert.Contains(t, footer, "/: search")
		assert.Contains(t, footer, "v: list view")
		assert.Contains(t, footer, `Filter: "bead"`)
	})

	t.Run("search", func(t *testing.T) {
		footer := Footer(FooterState{SearchMode: true, SearchQuery: "ke", Recent: []string{"kente", "bead"}})
		assert.Contains(t, footer, "Search: ke")
		assert.Contains(t, footer, "Recent: kente, bead")
		assert.NotContains(t, footer, "/: search")
	})

	t.Run("overlay", func(t *testing.T) {
		footer := Footer(FooterState{OverlayOpen: true})
		assert.Contains(t, footer, "ESC/x: close")
		assert.NotContains(t, footer, "j/k: move")
	})

	t.Run("status", func(t *testing.T) {
		footer := Footer(FooterState{StatusMessage: "Catalog unavailable", StatusError: true})
		assert.True(t, strings.Contains(footer, "Catalog unavailable"))
	})
}

func TestCardsPerRow(t *testing.T) {
	assert.Equal(t, 1, CardsPerRow(0))
	assert.Equal(t, 1, CardsPerRow(80))
	assert.Equal(t, 2, CardsPerRow(100))
	assert.Equal(t, 3, CardsPerRow(150))
}
