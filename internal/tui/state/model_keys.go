package state

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/errors"
)

// handleKeyMsg routes a key press by mode: overlay, search, then browse.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.session == nil {
		return m.handleUnloadedKey(msg)
	}
	if m.session.Detail().IsOpen() {
		return m.handleOverlayKey(msg)
	}
	if m.uiState.IsSearchMode() {
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m *Model) handleUnloadedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		if !m.loading {
			return m, m.reload()
		}
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.gate.Flush()
		m.uiState.SetSearchMode(false)
		m.session.SetSearchTerm("")
		return m, nil
	case tea.KeyEnter:
		if value, ok := m.gate.Flush(); ok {
			m.session.SetSearchTerm(value)
		}
		if m.store != nil {
			m.store.SaveSearch(m.uiState.GetSearchQuery())
		}
		m.uiState.SetSearchMode(false)
		return m, nil
	case tea.KeyBackspace:
		m.uiState.BackspaceSearchQuery()
		return m, m.scheduleSearch()
	case tea.KeySpace:
		m.uiState.AppendToSearchQuery(' ')
		return m, m.scheduleSearch()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.uiState.AppendToSearchQuery(r)
		}
		return m, m.scheduleSearch()
	}
	return m, nil
}

// scheduleSearch issues a debounce token for the current query. Only the
// last token of a burst is applied.
func (m *Model) scheduleSearch() tea.Cmd {
	token := m.gate.Issue(m.uiState.GetSearchQuery())
	return debounceCmd(m.gate.Window(), token)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.session.Criteria().SearchTerm != "" {
			m.session.SetSearchTerm("")
		}
		return m, nil
	case tea.KeyEnter:
		return m, m.openSelected()
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j":
		m.moveCursor(1)
	case "k":
		m.moveCursor(-1)
	case "/":
		m.uiState.SetSearchMode(true)
		m.uiState.SetSearchQuery(m.session.Criteria().SearchTerm)
	case "c":
		return m, m.cycleCategory()
	case "s":
		return m, m.cycleSort()
	case "v":
		return m, m.toggleViewMode()
	case "r":
		if !m.loading {
			return m, m.reload()
		}
	}
	return m, nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dismiss(detail.TriggerCancel)
		return m, nil
	case tea.KeyTab:
		m.session.Detail().FocusNext()
		m.Render(m.session.Projection())
		return m, nil
	case tea.KeyShiftTab:
		m.session.Detail().FocusPrev()
		m.Render(m.session.Projection())
		return m, nil
	case tea.KeyEnter:
		return m, m.activateFocused()
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "x":
		m.dismiss(detail.TriggerClose)
	case "n":
		m.stepSelection(1)
	case "p":
		m.stepSelection(-1)
	}
	// everything else is swallowed while focus is trapped
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	n := len(m.projection.Sellers)
	if delta < 0 {
		m.uiState.MoveCursorUp()
	} else {
		m.uiState.MoveCursorDown(n)
	}
	m.updateViewportContent()
	m.ensureCursorVisible()
}

func (m *Model) openSelected() tea.Cmd {
	cursor := m.uiState.GetCursor()
	if cursor >= len(m.projection.Sellers) {
		return nil
	}
	if err := m.session.Select(m.projection.Sellers[cursor].ID, cursor); err != nil {
		errors.Report(m.errorHandler, err)
		return errorMsgAfter(errorClearDuration)
	}
	return nil
}

// stepSelection moves the open overlay to the neighbouring seller in the
// current result order. The row that opened the overlay stays the focus
// origin.
func (m *Model) stepSelection(delta int) {
	sellers := m.projection.Sellers
	if len(sellers) == 0 {
		return
	}
	current := -1
	id := m.session.Detail().State().SellerID
	for i, s := range sellers {
		if s.ID == id {
			current = i
			break
		}
	}
	next := (current + delta + len(sellers)) % len(sellers)
	if current < 0 {
		next = 0
	}
	if err := m.session.Select(sellers[next].ID, m.uiState.GetCursor()); err != nil {
		errors.Report(m.errorHandler, err)
	}
}

func (m *Model) activateFocused() tea.Cmd {
	p := m.projection.Detail
	if p.Seller == nil || p.Focused == detail.FocusCloseButton {
		m.dismiss(detail.TriggerClose)
		return nil
	}
	for _, c := range p.Seller.Contacts {
		if c.Kind == p.Focused {
			m.errorHandler.Info(fmt.Sprintf("%s: %s", c.Label, c.URL))
			return errorMsgAfter(errorClearDuration)
		}
	}
	return nil
}

func (m *Model) dismiss(trigger detail.Trigger) {
	m.session.Dismiss(trigger)
	if origin, ok := m.session.Detail().ReturnFocus(); ok {
		m.uiState.SetCursor(origin)
		m.uiState.AdjustCursorBounds(len(m.projection.Sellers))
		m.updateViewportContent()
		m.ensureCursorVisible()
	}
}

// cycleCategory steps through All and every category. Changing the
// category clears the search term.
func (m *Model) cycleCategory() tea.Cmd {
	categories := m.session.Catalog().Categories()
	current := m.session.Criteria().Category

	next := ""
	if current == "" && len(categories) > 0 {
		next = categories[0].Name
	} else {
		for i, c := range categories {
			if c.Name == current && i+1 < len(categories) {
				next = categories[i+1].Name
				break
			}
		}
	}

	if err := m.session.SetCriteria(domain.Criteria{Category: next}); err != nil {
		errors.Report(m.errorHandler, err)
		return errorMsgAfter(errorClearDuration)
	}
	m.uiState.ResetCursor()
	m.uiState.GetViewport().GotoTop()
	m.updateViewportContent()
	return nil
}

func (m *Model) cycleSort() tea.Cmd {
	next := m.session.SortKey().Next()
	if err := m.session.SetSortKey(next); err != nil {
		errors.Report(m.errorHandler, err)
		return errorMsgAfter(errorClearDuration)
	}
	m.prefs.SortBy = next
	m.errorHandler.Success(fmt.Sprintf("Sorted by %s", next))
	if cmd := m.savePreferences(); cmd != nil {
		return cmd
	}
	return errorMsgAfter(errorClearDuration)
}

func (m *Model) toggleViewMode() tea.Cmd {
	m.prefs.ViewMode = m.prefs.ToggleViewMode()
	m.uiState.SetViewMode(m.prefs.ViewMode)
	m.updateViewportContent()
	m.ensureCursorVisible()
	m.errorHandler.Success(fmt.Sprintf("%s view", strings.ToUpper(m.prefs.ViewMode[:1])+m.prefs.ViewMode[1:]))
	if cmd := m.savePreferences(); cmd != nil {
		return cmd
	}
	return errorMsgAfter(errorClearDuration)
}
