// Package state provides the BubbleTea model that binds the browsing session to the terminal.
package state

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/adnow/internal/debounce"
	"github.com/cristianoliveira/adnow/internal/domain"
)

// catalogLoadedMsg is sent when the catalog store produced a snapshot.
type catalogLoadedMsg struct {
	catalog *domain.Catalog
}

// catalogFailedMsg is sent when loading the catalog failed.
type catalogFailedMsg struct {
	err error
}

// searchDebounceMsg fires once the debounce window of a keystroke elapsed.
type searchDebounceMsg struct {
	token debounce.Token
}

// errorMsg clears the status line.
type errorMsg struct{}

// loadCatalogCmd returns a command that loads the catalog.
func loadCatalogCmd(loader CatalogLoader) tea.Cmd {
	return func() tea.Msg {
		c, err := loader.Load(context.Background())
		if err != nil {
			return catalogFailedMsg{err: err}
		}
		return catalogLoadedMsg{catalog: c}
	}
}

// debounceCmd waits out the window and reports the token back.
func debounceCmd(window time.Duration, token debounce.Token) tea.Cmd {
	return tea.Tick(window, func(time.Time) tea.Msg {
		return searchDebounceMsg{token: token}
	})
}

func errorMsgAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return errorMsg{}
	})
}
