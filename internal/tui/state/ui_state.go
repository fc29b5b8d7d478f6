package state

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/cristianoliveira/adnow/internal/settings"
)

// UIState manages all UI-specific state for the TUI.
// This includes viewport management, cursor position, search mode
// and the layout mode, kept apart from the browsing session.
type UIState struct {
	// Viewport management
	viewport viewport.Model
	width    int
	height   int

	// Cursor and navigation
	cursor int

	// Search state
	searchMode  bool
	searchQuery string

	viewMode string
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
		cursor:   0,
		viewMode: settings.ViewModeGrid,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width of the UI.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height of the UI.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= 0 {
		u.height = defaultViewportHeight
	}
}

// ViewportHeight returns the number of lines left for the seller list.
func (u *UIState) ViewportHeight() int {
	h := u.height - headerFooterLines
	if h < 1 {
		return 1
	}
	return h
}

// UpdateViewportSize updates the viewport dimensions based on the current width and height.
func (u *UIState) UpdateViewportSize() {
	u.viewport = viewport.New(u.width, u.ViewportHeight())
}

// GetCursor returns the current cursor position.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// SetCursor updates the cursor position.
func (u *UIState) SetCursor(cursor int) {
	u.cursor = cursor
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// IsSearchMode returns whether search mode is active.
func (u *UIState) IsSearchMode() bool {
	return u.searchMode
}

// SetSearchMode activates or deactivates search mode.
func (u *UIState) SetSearchMode(active bool) {
	u.searchMode = active
	if !active {
		u.searchQuery = ""
	}
}

// GetSearchQuery returns the current search query.
func (u *UIState) GetSearchQuery() string {
	return u.searchQuery
}

// SetSearchQuery updates the search query.
func (u *UIState) SetSearchQuery(query string) {
	u.searchQuery = query
}

// AppendToSearchQuery appends a rune to the search query.
func (u *UIState) AppendToSearchQuery(r rune) {
	u.searchQuery += string(r)
}

// BackspaceSearchQuery removes the last character from the search query.
func (u *UIState) BackspaceSearchQuery() {
	runes := []rune(u.searchQuery)
	if len(runes) > 0 {
		u.searchQuery = string(runes[:len(runes)-1])
	}
}

// GetViewMode returns the layout mode, grid or list.
func (u *UIState) GetViewMode() string {
	return u.viewMode
}

// SetViewMode sets the layout mode. Unknown modes fall back to grid.
func (u *UIState) SetViewMode(mode string) {
	if mode != settings.ViewModeList {
		mode = settings.ViewModeGrid
	}
	u.viewMode = mode
}

// MoveCursorUp moves the cursor up one position if possible.
func (u *UIState) MoveCursorUp() {
	if u.cursor > 0 {
		u.cursor--
	}
}

// MoveCursorDown moves the cursor down one position if possible.
func (u *UIState) MoveCursorDown(listLen int) {
	if u.cursor < listLen-1 {
		u.cursor++
	}
}

// EnsureLinesVisible scrolls the viewport so that the block starting at
// line top and spanning height lines is on screen.
func (u *UIState) EnsureLinesVisible(top, height int) {
	lineOffset := u.viewport.YOffset
	viewportHeight := u.viewport.Height

	if top < lineOffset {
		u.viewport.LineUp(lineOffset - top)
		return
	}
	if bottom := top + height; bottom > lineOffset+viewportHeight {
		u.viewport.LineDown(bottom - (lineOffset + viewportHeight))
	}
}

// AdjustCursorBounds ensures the cursor is within valid bounds.
func (u *UIState) AdjustCursorBounds(listLen int) {
	if listLen == 0 {
		u.cursor = 0
		return
	}
	if u.cursor >= listLen {
		u.cursor = listLen - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// ResetCursor resets the cursor to the first item.
func (u *UIState) ResetCursor() {
	u.cursor = 0
}
