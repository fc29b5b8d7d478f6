package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/metrics"
)

// KeyPrefix namespaces every key written by Store.
const KeyPrefix = "adnow_"

// Key names, without prefix.
const (
	KeyVisitCount    = "visit_count"
	KeyFavorites     = "favorites"
	KeySearchHistory = "search_history"
	KeyPreferences   = "preferences"
	KeyLastVisit     = "last_visit"
)

// MaxSearchHistory is the number of search terms kept.
const MaxSearchHistory = 10

const opTimeout = 5 * time.Second

// DefaultPreferences returns the preferences seeded on first use.
func DefaultPreferences() map[string]any {
	return map[string]any{
		"sortBy":   "name",
		"viewMode": "grid",
		"darkMode": false,
	}
}

// Store exposes the persisted user state on top of a Backend.
//
// Every operation is synchronous. Backend failures and malformed stored values
// never escape: they are logged and the documented default is returned.
type Store struct {
	backend Backend
	now     func() time.Time
}

// NewStore wraps a backend.
func NewStore(backend Backend) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{backend: backend, now: time.Now}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Init seeds missing keys with their defaults. Existing values are kept.
func (s *Store) Init() {
	if _, ok := s.read(KeyPreferences); !ok {
		s.writeJSON(KeyPreferences, DefaultPreferences())
	}
	if _, ok := s.read(KeyFavorites); !ok {
		s.writeJSON(KeyFavorites, []int{})
	}
	if _, ok := s.read(KeySearchHistory); !ok {
		s.writeJSON(KeySearchHistory, []string{})
	}
}

// VisitCount returns the stored visit count, 0 if absent or unreadable.
func (s *Store) VisitCount() int {
	raw, ok := s.read(KeyVisitCount)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		s.corrupt(KeyVisitCount, err)
		return 0
	}
	return n
}

// IncrementVisitCount adds one to the visit count and returns the new value.
func (s *Store) IncrementVisitCount() int {
	n := s.VisitCount() + 1
	s.write(KeyVisitCount, strconv.Itoa(n))
	return n
}

// RecordVisit counts one browser visit and stamps the last visit time.
// It returns the new visit count.
func (s *Store) RecordVisit() int {
	n := s.IncrementVisitCount()
	s.write(KeyLastVisit, s.now().UTC().Format(time.RFC3339))
	return n
}

// Favorites returns favorite seller IDs in the order they were added.
func (s *Store) Favorites() []int {
	var ids []int
	if !s.readJSON(KeyFavorites, &ids) {
		return []int{}
	}
	return dedupeInts(ids)
}

// AddFavorite adds id to the favorites. Adding a present id is a no-op.
func (s *Store) AddFavorite(id int) {
	ids := s.Favorites()
	for _, existing := range ids {
		if existing == id {
			return
		}
	}
	s.writeJSON(KeyFavorites, append(ids, id))
}

// RemoveFavorite removes id from the favorites. Removing an absent id is a no-op.
func (s *Store) RemoveFavorite(id int) {
	ids := s.Favorites()
	out := make([]int, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if len(out) == len(ids) {
		return
	}
	s.writeJSON(KeyFavorites, out)
}

// IsFavorite reports whether id is a favorite.
func (s *Store) IsFavorite(id int) bool {
	for _, existing := range s.Favorites() {
		if existing == id {
			return true
		}
	}
	return false
}

// Preferences returns the stored preferences, or the defaults if absent or unreadable.
func (s *Store) Preferences() map[string]any {
	var prefs map[string]any
	if !s.readJSON(KeyPreferences, &prefs) || prefs == nil {
		return DefaultPreferences()
	}
	return prefs
}

// UpdatePreferences merges partial shallowly over the stored preferences.
// Keys missing from partial keep their stored values.
func (s *Store) UpdatePreferences(partial map[string]any) {
	prefs := s.Preferences()
	for k, v := range partial {
		prefs[k] = v
	}
	s.writeJSON(KeyPreferences, prefs)
}

// SearchHistory returns saved search terms, newest first.
func (s *Store) SearchHistory() []string {
	var terms []string
	if !s.readJSON(KeySearchHistory, &terms) {
		return []string{}
	}
	if len(terms) > MaxSearchHistory {
		terms = terms[:MaxSearchHistory]
	}
	return terms
}

// SaveSearch records term at the front of the history.
// Blank terms are ignored and an existing entry differing only in case is replaced.
func (s *Store) SaveSearch(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	terms := []string{term}
	for _, existing := range s.SearchHistory() {
		if strings.EqualFold(existing, term) {
			continue
		}
		terms = append(terms, existing)
	}
	if len(terms) > MaxSearchHistory {
		terms = terms[:MaxSearchHistory]
	}
	s.writeJSON(KeySearchHistory, terms)
}

// ClearSearchHistory empties the search history.
func (s *Store) ClearSearchHistory() {
	s.writeJSON(KeySearchHistory, []string{})
}

// LastVisit returns the time recorded by the most recent RecordVisit.
func (s *Store) LastVisit() (time.Time, bool) {
	raw, ok := s.read(KeyLastVisit)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.corrupt(KeyLastVisit, err)
		return time.Time{}, false
	}
	return t, true
}

// ClearAll deletes every key managed by the store.
func (s *Store) ClearAll() {
	for _, key := range []string{KeyVisitCount, KeyFavorites, KeySearchHistory, KeyPreferences, KeyLastVisit} {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		err := s.backend.Delete(ctx, KeyPrefix+key)
		cancel()
		if err != nil {
			s.failed("delete", key, err)
		}
	}
}

func (s *Store) read(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	v, ok, err := s.backend.Get(ctx, KeyPrefix+key)
	if err != nil {
		s.failed("get", key, err)
		return "", false
	}
	return v, ok
}

func (s *Store) write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.backend.Set(ctx, KeyPrefix+key, value); err != nil {
		s.failed("set", key, err)
	}
}

func (s *Store) readJSON(key string, dst any) bool {
	raw, ok := s.read(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.corrupt(key, err)
		return false
	}
	return true
}

func (s *Store) writeJSON(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.failed("encode", key, err)
		return
	}
	s.write(key, string(data))
}

func (s *Store) failed(op, key string, err error) {
	metrics.PersistenceErrors.WithLabelValues(op).Inc()
	colors.StructuredDebug("storage", op, "failed", err, KeyPrefix+key, nil)
}

func (s *Store) corrupt(key string, err error) {
	metrics.PersistenceErrors.WithLabelValues("decode").Inc()
	colors.StructuredDebug("storage", "decode", "corrupt", err, KeyPrefix+key, nil)
}

func dedupeInts(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
