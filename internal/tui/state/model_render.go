package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/adnow/internal/errors"
	"github.com/cristianoliveira/adnow/internal/settings"
	"github.com/cristianoliveira/adnow/internal/tui/render"
)

// bounds is a screen rectangle, max exclusive.
type bounds struct {
	x0, y0, x1, y1 int
}

func (b bounds) contains(x, y int) bool {
	return x >= b.x0 && x < b.x1 && y >= b.y0 && y < b.y1
}

// View renders the TUI.
func (m *Model) View() string {
	if m.uiState.GetViewport().Height == 0 {
		m.uiState.UpdateViewportSize()
		m.updateViewportContent()
	}

	if m.session == nil {
		return m.viewUnloaded()
	}

	var s strings.Builder

	s.WriteString(render.Header(render.HeaderState{
		Width:      m.uiState.GetWidth(),
		Shown:      len(m.projection.Sellers),
		Total:      m.projection.Total,
		SortKey:    m.projection.SortKey,
		Categories: m.projection.Categories,
		Category:   m.projection.Criteria.Category,
	}))

	s.WriteString("\n")
	if m.projection.Detail.Open && m.projection.Detail.Seller != nil {
		s.WriteString(m.viewOverlay())
	} else {
		s.WriteString(m.uiState.GetViewport().View())
	}

	s.WriteString("\n")
	s.WriteString(render.Footer(m.footerState()))

	return s.String()
}

func (m *Model) viewUnloaded() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("ADNOW"))
	s.WriteString("\n\n")
	switch {
	case m.loading:
		s.WriteString("Loading catalog...")
	case m.loadErr != nil:
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("Catalog unavailable"))
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.loadErr.Error()))
	}
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("r: retry  |  q: quit"))
	return s.String()
}

func (m *Model) footerState() render.FooterState {
	state := render.FooterState{
		SearchMode:    m.uiState.IsSearchMode(),
		SearchQuery:   m.uiState.GetSearchQuery(),
		SearchTerm:    m.projection.Criteria.SearchTerm,
		OverlayOpen:   m.projection.Detail.Open,
		ViewMode:      m.uiState.GetViewMode(),
		StatusMessage: m.statusMessage,
		StatusError:   m.statusMessage != "" && m.statusLevel == errors.LevelError,
	}
	if state.SearchMode {
		state.Recent = m.recentSearches()
	}
	return state
}

// viewOverlay centers the detail dialog in the list area.
func (m *Model) viewOverlay() string {
	overlay := m.renderOverlay()
	b := m.overlayBounds(overlay)
	lines := strings.Split(overlay, "\n")
	height := m.uiState.ViewportHeight()

	out := make([]string, 0, height)
	for i := 0; i < b.y0-headerLines; i++ {
		out = append(out, "")
	}
	pad := strings.Repeat(" ", b.x0)
	for _, line := range lines {
		if len(out) == height {
			break
		}
		out = append(out, pad+line)
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderOverlay() string {
	d := m.projection.Detail
	if d.Seller == nil {
		return ""
	}
	return render.Overlay(render.OverlayState{
		Seller:  *d.Seller,
		Focused: d.Focused,
		Width:   m.uiState.GetWidth(),
	})
}

// overlayBounds returns where the overlay sits on screen.
func (m *Model) overlayBounds(overlay string) bounds {
	w := lipgloss.Width(overlay)
	h := lipgloss.Height(overlay)
	height := m.uiState.ViewportHeight()
	if h > height {
		h = height
	}
	x := (m.uiState.GetWidth() - w) / 2
	if x < 0 {
		x = 0
	}
	y := (height - h) / 2
	if y < 0 {
		y = 0
	}
	return bounds{x0: x, y0: headerLines + y, x1: x + w, y1: headerLines + y + h}
}

// updateViewportContent redraws the seller list from the last projection.
func (m *Model) updateViewportContent() {
	var content strings.Builder
	width := m.uiState.GetWidth()
	cursor := m.uiState.GetCursor()
	sellers := m.projection.Sellers

	if len(sellers) == 0 {
		content.WriteString(render.Empty())
		m.uiState.GetViewport().SetContent(content.String())
		return
	}

	if m.uiState.GetViewMode() == settings.ViewModeList {
		for i, s := range sellers {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(render.Row(render.RowState{Seller: s, Width: width, Selected: i == cursor}))
		}
		m.uiState.GetViewport().SetContent(content.String())
		return
	}

	perRow := render.CardsPerRow(width)
	for start := 0; start < len(sellers); start += perRow {
		end := start + perRow
		if end > len(sellers) {
			end = len(sellers)
		}
		cards := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, " ")
			}
			cards = append(cards, render.Card(render.RowState{Seller: sellers[i], Width: width, Selected: i == cursor}))
		}
		if start > 0 {
			content.WriteString("\n")
		}
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	m.uiState.GetViewport().SetContent(content.String())
}

// ensureCursorVisible scrolls to the line block holding the cursor.
func (m *Model) ensureCursorVisible() {
	if len(m.projection.Sellers) == 0 {
		return
	}
	cursor := m.uiState.GetCursor()
	if m.uiState.GetViewMode() == settings.ViewModeList {
		m.uiState.EnsureLinesVisible(cursor, 1)
		return
	}
	row := cursor / render.CardsPerRow(m.uiState.GetWidth())
	m.uiState.EnsureLinesVisible(row*render.CardHeight, render.CardHeight)
}
