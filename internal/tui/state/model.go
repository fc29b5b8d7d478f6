package state

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/debounce"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/engine"
	"github.com/cristianoliveira/adnow/internal/errors"
	"github.com/cristianoliveira/adnow/internal/settings"
)

const (
	headerFooterLines     = 3
	headerLines           = 2
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	errorClearDuration    = 5 * time.Second
	sessionName           = "tui"
)

// CatalogLoader produces catalog snapshots.
type CatalogLoader interface {
	Load(ctx context.Context) (*domain.Catalog, error)
}

// Persistence is the part of the persistence layer the browser writes to.
type Persistence interface {
	settings.Store
	SearchHistory() []string
	SaveSearch(term string)
}

// Options configures a Model.
type Options struct {
	Loader    CatalogLoader
	Store     Persistence
	Engine    *engine.Engine
	Debounce  time.Duration
	SessionID string
}

// Model is the BubbleTea model for the seller browser.
type Model struct {
	uiState *UIState

	loader  CatalogLoader
	store   Persistence
	engine  *engine.Engine
	gate    *debounce.Gate
	session *browser.Session

	projection browser.Projection
	prefs      settings.Preferences
	sessionID  string

	loading bool
	loadErr error

	errorHandler  *errors.TUIHandler
	statusMessage string
	statusLevel   errors.Level
}

// NewModel creates a new TUI model. The catalog is loaded by Init.
func NewModel(opts Options) (*Model, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("tui: catalog loader is required")
	}
	window := opts.Debounce
	if window <= 0 {
		window = debounce.DefaultWindow
	}
	eng := opts.Engine
	if eng == nil {
		eng = engine.Default()
	}

	m := &Model{
		uiState:   NewUIState(),
		loader:    opts.Loader,
		store:     opts.Store,
		engine:    eng,
		gate:      debounce.NewGate(window),
		prefs:     settings.DefaultPreferences(),
		sessionID: opts.SessionID,
		loading:   true,
	}
	if m.store != nil {
		m.prefs = settings.Load(m.store)
	}
	m.uiState.SetViewMode(m.prefs.ViewMode)

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusLevel = msg.Level
	})

	return m, nil
}

// Init loads the catalog.
func (m *Model) Init() tea.Cmd {
	return loadCatalogCmd(m.loader)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)
	case catalogFailedMsg:
		return m.handleCatalogFailed(msg)
	case searchDebounceMsg:
		if m.gate.Accept(msg.token) && m.session != nil {
			m.session.SetSearchTerm(msg.token.Value())
		}
		return m, nil
	case errorMsg:
		m.statusMessage = ""
		m.errorHandler.Clear()
		return m, nil
	}
	return m, nil
}

// Render receives every projection the session produces.
func (m *Model) Render(p browser.Projection) {
	m.projection = p
	m.uiState.AdjustCursorBounds(len(p.Sellers))
	m.updateViewportContent()
}

// Projection returns the last rendered projection.
func (m *Model) Projection() browser.Projection {
	return m.projection
}

// Session returns the browsing session, or nil before the first load.
func (m *Model) Session() *browser.Session {
	return m.session
}

// LoadError returns the error of a failed initial load, nil once a catalog is shown.
func (m *Model) LoadError() error {
	return m.loadErr
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.uiState.SetWidth(msg.Width)
	m.uiState.SetHeight(msg.Height)
	m.uiState.UpdateViewportSize()
	m.updateViewportContent()
	m.ensureCursorVisible()
	return m, nil
}

func (m *Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.loadErr = nil

	criteria := domain.Criteria{}
	sortKey := m.prefs.SortBy
	if m.session != nil {
		criteria = m.session.Criteria()
		sortKey = m.session.SortKey()
	}
	if criteria.Category != "" && !msg.catalog.HasCategory(criteria.Category) {
		criteria = criteria.WithCategory("")
	}

	session, err := browser.NewSession(msg.catalog, m,
		browser.WithEngine(m.engine),
		browser.WithSortKey(sortKey),
		browser.WithCriteria(criteria),
		browser.WithName(sessionName),
	)
	if err != nil {
		errors.Report(m.errorHandler, err)
		return m, errorMsgAfter(errorClearDuration)
	}
	m.session = session
	m.ensureCursorVisible()

	colors.StructuredInfo("tui", "load", "success", nil, m.sessionID, map[string]interface{}{
		"sellers": msg.catalog.Len(),
	})
	return m, nil
}

func (m *Model) handleCatalogFailed(msg catalogFailedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	colors.StructuredError("tui", "load", "failed", msg.err, m.sessionID, nil)

	if m.session == nil {
		m.loadErr = msg.err
		return m, nil
	}
	// a failed reload keeps the snapshot on screen
	m.errorHandler.Error("Reload failed: " + errors.Describe(msg.err))
	return m, errorMsgAfter(errorClearDuration)
}

func (m *Model) reload() tea.Cmd {
	m.loading = true
	return loadCatalogCmd(m.loader)
}

func (m *Model) savePreferences() tea.Cmd {
	if m.store == nil {
		return nil
	}
	if err := settings.Save(m.store, m.prefs); err != nil {
		m.errorHandler.Error(fmt.Sprintf("Failed to save preferences: %v", err))
		return errorMsgAfter(errorClearDuration)
	}
	return nil
}

func (m *Model) recentSearches() []string {
	if m.store == nil {
		return nil
	}
	return m.store.SearchHistory()
}
