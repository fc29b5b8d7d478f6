package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/adnow/internal/detail"
)

// handleMouseMsg dismisses the overlay on a click outside it and scrolls
// the list with the wheel while no overlay is open.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}

	if m.session.Detail().IsOpen() {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !m.overlayBounds(m.renderOverlay()).contains(msg.X, msg.Y) {
			m.dismiss(detail.TriggerOutside)
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
	}
	return m, nil
}
