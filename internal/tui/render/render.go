// Package render draws the browse screen pieces with lipgloss.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
)

const (
	nameWidth            = 24
	categoryWidth        = 14
	locationWidth        = 16
	ratingWidth          = 10
	spacesBetweenColumns = 8
	minDescriptionWidth  = 10
	cardInnerWidth       = 44
	overlayMaxWidth      = 64
	overlayMinWidth      = 30
	mutedColor           = "241"
	allCategoriesLabel   = "All"
)

// CardHeight is the number of terminal lines one grid card occupies.
const CardHeight = 6

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	Width      int
	Shown      int
	Total      int
	SortKey    domain.SortKey
	Categories []browser.CategoryView
	Category   string
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	SearchMode    bool
	SearchQuery   string
	SearchTerm    string
	OverlayOpen   bool
	ViewMode      string
	Recent        []string
	StatusMessage string
	StatusError   bool
}

// RowState defines the inputs needed to render a seller row or card.
type RowState struct {
	Seller   browser.SellerView
	Width    int
	Selected bool
}

// OverlayState defines the inputs needed to render the detail overlay.
type OverlayState struct {
	Seller  browser.SellerView
	Focused string
	Width   int
}

// Header renders the title line and the category bar.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	title := titleStyle.Render("ADNOW") +
		mutedStyle.Render(fmt.Sprintf("  %d of %d sellers  ·  sort: %s", state.Shown, state.Total, state.SortKey))

	return title + "\n" + CategoryBar(state.Categories, state.Category, state.Width)
}

// CategoryBar renders the category facets, the active one highlighted.
func CategoryBar(categories []browser.CategoryView, selected string, width int) string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	idleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	items := make([]string, 0, len(categories)+1)
	if selected == "" {
		items = append(items, activeStyle.Render("["+allCategoriesLabel+"]"))
	} else {
		items = append(items, idleStyle.Render(allCategoriesLabel))
	}
	for _, c := range categories {
		label := strings.TrimSpace(fmt.Sprintf("%s %s (%d)", c.Icon, c.Name, c.Count))
		if c.Selected {
			items = append(items, activeStyle.Render("["+label+"]"))
			continue
		}
		items = append(items, idleStyle.Render(label))
	}
	bar := strings.Join(items, " ")
	if width > 0 && lipgloss.Width(bar) > width {
		return truncate(stripToPlain(categories, selected), width)
	}
	return bar
}

// Row renders a single seller line for list mode.
func Row(state RowState) string {
	rowStyle := lipgloss.NewStyle()
	if state.Selected {
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	s := state.Seller
	name := s.Name
	if s.Verified {
		name += " ✓"
	}
	descriptionWidth := calculateDescriptionWidth(state.Width)

	row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s",
		nameWidth, truncate(name, nameWidth),
		categoryWidth, truncate(s.Category, categoryWidth),
		locationWidth, truncate(s.Location, locationWidth),
		ratingWidth, s.RatingLabel,
		truncate(strings.Join(s.Tags, ", "), descriptionWidth),
	)

	return rowStyle.Render(row)
}

// Card renders a bordered seller card for grid mode. Every card is CardHeight lines tall.
func Card(state RowState) string {
	borderColor := lipgloss.Color(mutedColor)
	if state.Selected {
		borderColor = lipgloss.Color(ansiColorNumber(colors.Blue))
	}
	width := cardInnerWidth
	if state.Width > 0 && state.Width-2 < width {
		width = state.Width - 2
	}
	if width < minDescriptionWidth {
		width = minDescriptionWidth
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		MaxHeight(CardHeight)

	s := state.Seller
	nameStyle := lipgloss.NewStyle().Bold(true)
	if state.Selected {
		nameStyle = nameStyle.Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	}
	title := s.Name
	if len(s.Badges) > 0 {
		title += " · " + strings.Join(s.Badges, " · ")
	}

	lines := []string{
		nameStyle.Render(truncate(title, width)),
		truncate(s.Stars+" "+s.RatingLabel, width),
		truncate(s.Category+" · "+s.Location, width),
		truncate(strings.Join(s.Tags, ", "), width),
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Empty renders the no-results message.
func Empty() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(browser.NoResultsMessage)
}

// Overlay renders the seller detail dialog.
func Overlay(state OverlayState) string {
	width := overlayWidth(state.Width)
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ansiColorNumber(colors.Blue))).
		Padding(0, 1).
		Width(width)

	s := state.Seller
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))
	titleStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Name))
	if len(s.Badges) > 0 {
		b.WriteString("  " + mutedStyle.Render(strings.Join(s.Badges, " · ")))
	}
	b.WriteString("\n")
	b.WriteString(s.Stars + " " + s.RatingLabel + "\n")
	b.WriteString(mutedStyle.Render(s.Category+" · "+s.Location) + "\n")
	if s.Joined != "" {
		b.WriteString(mutedStyle.Render("Joined "+s.Joined) + "\n")
	}
	if s.Description != "" {
		b.WriteString("\n" + s.Description + "\n")
	}
	if len(s.Products) > 0 {
		b.WriteString("\nProducts\n")
		for _, p := range s.Products {
			b.WriteString("  • " + p + "\n")
		}
	}
	if len(s.Contacts) > 0 {
		b.WriteString("\nContact\n")
		for _, c := range s.Contacts {
			b.WriteString(focusable(c.Kind == state.Focused, c.Label+"  "+c.URL) + "\n")
		}
	}
	b.WriteString("\n" + focusable(state.Focused == detail.FocusCloseButton, "[ Close ]"))

	return box.Render(b.String())
}

// Footer renders the footer with help text and the status line.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	var help []string
	switch {
	case state.OverlayOpen:
		help = append(help, "tab: next control", "n/p: next/prev seller", "Enter: activate", "ESC/x: close")
	case state.SearchMode:
		help = append(help, "ESC: clear search", "Enter: done", fmt.Sprintf("Search: %s", state.SearchQuery))
		if len(state.Recent) > 0 {
			help = append(help, "Recent: "+strings.Join(state.Recent, ", "))
		}
	default:
		help = append(help, "j/k: move", "/: search", "c: category", "s: sort")
		help = append(help, fmt.Sprintf("v: %s view", otherViewMode(state.ViewMode)))
		help = append(help, "Enter: details", "r: reload", "q: quit")
		if state.SearchTerm != "" {
			help = append(help, fmt.Sprintf("Filter: %q", state.SearchTerm))
		}
	}

	footer := helpStyle.Render(strings.Join(help, "  |  "))
	if state.StatusMessage == "" {
		return footer
	}
	statusColor := colors.Green
	if state.StatusError {
		statusColor = colors.Red
	}
	status := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(statusColor))).Render(state.StatusMessage)
	return status + "  " + footer
}

// OverlayWidth returns the rendered overlay width for a terminal width, borders included.
func OverlayWidth(termWidth int) int {
	return overlayWidth(termWidth) + 2
}

func overlayWidth(termWidth int) int {
	width := overlayMaxWidth
	if termWidth > 0 && termWidth-6 < width {
		width = termWidth - 6
	}
	if width < overlayMinWidth {
		width = overlayMinWidth
	}
	return width
}

func focusable(focused bool, label string) string {
	if !focused {
		return "  " + label
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(ansiColorNumber(colors.Blue))).
		Foreground(lipgloss.Color("0")).
		Render("> " + label)
}

func otherViewMode(mode string) string {
	if mode == "list" {
		return "grid"
	}
	return "list"
}

func calculateDescriptionWidth(width int) int {
	totalFixedWidth := nameWidth + categoryWidth + locationWidth + ratingWidth
	w := width - totalFixedWidth - spacesBetweenColumns
	if width == 0 || w < minDescriptionWidth {
		return minDescriptionWidth
	}
	return w
}

func stripToPlain(categories []browser.CategoryView, selected string) string {
	names := []string{allCategoriesLabel}
	if selected == "" {
		names[0] = "[" + allCategoriesLabel + "]"
	}
	for _, c := range categories {
		if c.Selected {
			names = append(names, "["+c.Name+"]")
			continue
		}
		names = append(names, c.Name)
	}
	return strings.Join(names, " ")
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}

// CardsPerRow returns how many grid cards fit side by side.
func CardsPerRow(width int) int {
	perRow := width / (cardInnerWidth + 3)
	if perRow < 1 {
		return 1
	}
	return perRow
}
