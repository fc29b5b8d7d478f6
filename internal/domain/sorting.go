package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSortKey indicates a sort key outside the closed set.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey selects the ordering applied to a filtered seller sequence.
type SortKey int

const (
	// SortByName orders by name ascending using a locale-aware collator.
	SortByName SortKey = iota
	// SortByRating orders by rating descending.
	SortByRating
	// SortByNewest orders by joined date descending.
	SortByNewest
)

var sortKeyNames = map[SortKey]string{
	SortByName:   "name",
	SortByRating: "rating",
	SortByNewest: "newest",
}

// SortKeys returns every sort key in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByRating, SortByNewest}
}

// IsValid checks if the sort key is one of the defined keys.
func (k SortKey) IsValid() bool {
	_, ok := sortKeyNames[k]
	return ok
}

// String returns the string representation of the sort key.
func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// Next returns the following key in display order, wrapping around.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return SortByName
}

// MarshalText implements encoding.TextMarshaler.
func (k SortKey) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSortKey, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SortKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSortKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseSortKey parses a string into a SortKey.
func ParseSortKey(key string) (SortKey, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for k, name := range sortKeyNames {
		if name == normalized {
			return k, nil
		}
	}
	return SortByName, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
}
