package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/logging"
	"github.com/cristianoliveira/adnow/internal/storage"
	"github.com/cristianoliveira/adnow/internal/tui/state"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type browseClient interface {
	CatalogStore() *catalog.Store
	Persistence() *storage.Store
	DebounceWindow() time.Duration
}

const browseCommandLong = `Open the interactive seller browser.

USAGE:
    adnow browse

KEY BINDINGS:
    j/k, ↑/↓      Move selection
    /             Search (applied after a short pause)
    c             Next category (All, then each category)
    s             Next sort order (name, rating, newest)
    v             Toggle grid and list view
    Enter         Open seller details
    r             Reload the catalog
    q             Quit

IN THE DETAIL VIEW:
    Esc           Cancel and return to the list
    x             Close
    Tab/Shift+Tab Move focus between Close and contact links
    Enter         Activate the focused control
    n/p           Next or previous seller
    Click outside the panel to dismiss it.`

// programRunner runs a bubbletea model. Replaced in tests.
var programRunner = func(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// NewBrowseCmd creates the browse command with explicit dependencies.
func NewBrowseCmd(client browseClient) *cobra.Command {
	if client == nil {
		panic("NewBrowseCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive seller browser",
		Long:  browseCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(client)
		},
	}
}

func runBrowse(client browseClient) error {
	sessionID := uuid.NewString()
	if err := logging.InitGlobal(sessionID); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	store := client.Persistence()
	visits := store.RecordVisit()
	logging.Info("browse session started", "visits", visits)

	model, err := state.NewModel(state.Options{
		Loader:    client.CatalogStore(),
		Store:     store,
		Debounce:  client.DebounceWindow(),
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}

	if err := programRunner(model); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	// Quitting while the catalog is unavailable still exits non-zero.
	return model.LoadError()
}

func init() {
	browseCmd := NewBrowseCmd(coreClient)
	cmd.RootCmd.AddCommand(browseCmd)
	cmd.RootCmd.Args = cobra.NoArgs
	cmd.RootCmd.RunE = browseCmd.RunE
}
