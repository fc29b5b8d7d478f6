// Package settings provides a typed view over the persisted user preferences.
package settings

import (
	"github.com/cristianoliveira/adnow/internal/domain"
)

// Preference keys as stored by the persistence layer.
const (
	KeySortBy   = "sortBy"
	KeyViewMode = "viewMode"
	KeyDarkMode = "darkMode"
)

// View mode constants.
const (
	ViewModeGrid = "grid"
	ViewModeList = "list"
)

// Preferences holds the user preferences that survive restarts.
//
// Stored shape:
//
//	{"sortBy": "name", "viewMode": "grid", "darkMode": false}
type Preferences struct {
	SortBy   domain.SortKey
	ViewMode string
	DarkMode bool
}

// Store is the subset of the persistence layer used by this package.
type Store interface {
	Preferences() map[string]any
	UpdatePreferences(partial map[string]any)
}

// DefaultPreferences returns the preferences used when nothing valid is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		SortBy:   domain.SortByName,
		ViewMode: ViewModeGrid,
		DarkMode: false,
	}
}

// FromMap converts stored preferences into typed form.
// Each invalid or missing value falls back to its default independently.
func FromMap(m map[string]any) Preferences {
	p := DefaultPreferences()

	if raw, ok := m[KeySortBy].(string); ok {
		if key, err := domain.ParseSortKey(raw); err == nil {
			p.SortBy = key
		}
	}
	if raw, ok := m[KeyViewMode].(string); ok && validateViewMode(raw) == nil {
		p.ViewMode = raw
	}
	if raw, ok := m[KeyDarkMode].(bool); ok {
		p.DarkMode = raw
	}

	return p
}

// ToMap converts preferences to their stored form.
func (p Preferences) ToMap() map[string]any {
	return map[string]any{
		KeySortBy:   p.SortBy.String(),
		KeyViewMode: p.ViewMode,
		KeyDarkMode: p.DarkMode,
	}
}

// ToggleViewMode returns the other view mode.
func (p Preferences) ToggleViewMode() string {
	if p.ViewMode == ViewModeList {
		return ViewModeGrid
	}
	return ViewModeList
}

// Load reads preferences from the store.
func Load(store Store) Preferences {
	if store == nil {
		return DefaultPreferences()
	}
	return FromMap(store.Preferences())
}

// Save validates and writes preferences to the store.
func Save(store Store, p Preferences) error {
	if err := Validate(&p); err != nil {
		return err
	}
	store.UpdatePreferences(p.ToMap())
	return nil
}

// Set validates a single preference given as text and writes it.
func Set(store Store, key, value string) error {
	p := Load(store)
	if err := apply(&p, key, value); err != nil {
		return err
	}
	return Save(store, p)
}
