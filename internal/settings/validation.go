package settings

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/adnow/internal/domain"
)

// Validate checks that preference values are valid.
func Validate(p *Preferences) error {
	if p == nil {
		return fmt.Errorf("preferences cannot be nil")
	}
	if !p.SortBy.IsValid() {
		return fmt.Errorf("invalid sortBy value: %w", domain.ErrUnknownSortKey)
	}
	if err := validateViewMode(p.ViewMode); err != nil {
		return err
	}
	return nil
}

func validateViewMode(mode string) error {
	switch mode {
	case ViewModeGrid, ViewModeList:
		return nil
	default:
		return fmt.Errorf("invalid viewMode value: %s", mode)
	}
}

func apply(p *Preferences, key, value string) error {
	switch key {
	case KeySortBy:
		k, err := domain.ParseSortKey(value)
		if err != nil {
			return fmt.Errorf("invalid sortBy value: %w", err)
		}
		p.SortBy = k
	case KeyViewMode:
		if err := validateViewMode(value); err != nil {
			return err
		}
		p.ViewMode = value
	case KeyDarkMode:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid darkMode value: %s", value)
		}
		p.DarkMode = b
	default:
		return fmt.Errorf("unknown preference: %s", key)
	}
	return nil
}
