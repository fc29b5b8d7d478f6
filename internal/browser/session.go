// Package browser connects the catalog, the filter-sort engine and the
// detail overlay, and pushes a display-ready projection to a binder after
// every interaction.
package browser

import (
	"errors"
	"fmt"

	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/engine"
	"github.com/cristianoliveira/adnow/internal/metrics"
)

var (
	// ErrSellerNotFound indicates a selection of an id outside the catalog.
	ErrSellerNotFound = errors.New("seller not found")
	// ErrUnknownCategory indicates a category filter outside the catalog categories.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNoCatalog indicates a session was created without a catalog.
	ErrNoCatalog = errors.New("no catalog loaded")
)

// Session holds the interaction state for one catalog snapshot.
type Session struct {
	catalog  *domain.Catalog
	engine   *engine.Engine
	binder   Binder
	detail   *detail.Controller
	criteria domain.Criteria
	sortKey  domain.SortKey
	name     string

	results []domain.Seller
}

// Option configures a Session.
type Option func(*Session)

// WithEngine sets the filter-sort engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithSortKey sets the initial sort key.
func WithSortKey(k domain.SortKey) Option {
	return func(s *Session) {
		if k.IsValid() {
			s.sortKey = k
		}
	}
}

// WithCriteria sets the initial criteria.
func WithCriteria(c domain.Criteria) Option {
	return func(s *Session) {
		s.criteria = c
	}
}

// WithName labels the session in metrics.
func WithName(name string) Option {
	return func(s *Session) {
		s.name = name
	}
}

// NewSession creates a session and renders the initial projection.
func NewSession(c *domain.Catalog, binder Binder, opts ...Option) (*Session, error) {
	if c == nil {
		return nil, ErrNoCatalog
	}
	if binder == nil {
		binder = BinderFunc(func(Projection) {})
	}
	s := &Session{
		catalog: c,
		engine:  engine.Default(),
		binder:  binder,
		detail:  detail.NewController(),
		sortKey: domain.SortByName,
		name:    "session",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.criteria.Category != "" && !c.HasCategory(s.criteria.Category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, s.criteria.Category)
	}
	s.detail.OnTransition(func(detail.Transition) { s.render() })

	s.recompute()
	s.render()
	return s, nil
}

// Catalog returns the session catalog.
func (s *Session) Catalog() *domain.Catalog { return s.catalog }

// Criteria returns the current criteria.
func (s *Session) Criteria() domain.Criteria { return s.criteria }

// SortKey returns the current sort key.
func (s *Session) SortKey() domain.SortKey { return s.sortKey }

// Detail returns the overlay controller.
func (s *Session) Detail() *detail.Controller { return s.detail }

// Results returns the current ordered result set.
func (s *Session) Results() []domain.Seller {
	out := make([]domain.Seller, len(s.results))
	copy(out, s.results)
	return out
}

// SetSearchTerm updates the search term and re-renders.
func (s *Session) SetSearchTerm(term string) {
	s.criteria = s.criteria.WithSearchTerm(term)
	s.recompute()
	s.render()
}

// SetCategory updates the category filter and re-renders. Empty clears it.
func (s *Session) SetCategory(category string) error {
	if category != "" && !s.catalog.HasCategory(category) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	s.criteria = s.criteria.WithCategory(category)
	s.recompute()
	s.render()
	return nil
}

// SetCriteria replaces search term and category at once.
func (s *Session) SetCriteria(c domain.Criteria) error {
	if c.Category != "" && !s.catalog.HasCategory(c.Category) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, c.Category)
	}
	s.criteria = c
	s.recompute()
	s.render()
	return nil
}

// SetSortKey changes the ordering and re-renders.
func (s *Session) SetSortKey(k domain.SortKey) error {
	if !k.IsValid() {
		return fmt.Errorf("%w: %d", domain.ErrUnknownSortKey, int(k))
	}
	s.sortKey = k
	s.recompute()
	s.render()
	return nil
}

// Select opens the detail overlay on a seller. origin is the index of the
// control that triggered it.
func (s *Session) Select(id, origin int) error {
	if _, ok := s.catalog.Seller(id); !ok {
		return fmt.Errorf("%w: %d", ErrSellerNotFound, id)
	}
	if s.detail.State() == detail.OpenOn(id) {
		s.detail.Select(id, origin)
		return nil
	}
	seller, _ := s.catalog.Seller(id)
	s.detail.SetFocusTargets(focusTargets(seller)...)
	s.detail.Select(id, origin)
	return nil
}

// Dismiss closes the detail overlay.
func (s *Session) Dismiss(trigger detail.Trigger) {
	wasOpen := s.detail.IsOpen()
	s.detail.Dismiss(trigger)
	if !wasOpen {
		// not a transition, but the binder still needs the scroll lock released
		s.render()
	}
}

// Projection returns the projection for the current state.
func (s *Session) Projection() Projection {
	p := build(s.catalog, s.criteria, s.sortKey, s.results)
	st := s.detail.State()
	p.Detail = DetailView{
		Open:         st.Open,
		FocusTrapped: s.detail.FocusTrapped(),
		ScrollLocked: s.detail.ScrollLocked(),
		Focused:      s.detail.Focused(),
	}
	if st.Open {
		if seller, ok := s.catalog.Seller(st.SellerID); ok {
			view := NewSellerView(seller)
			p.Detail.Seller = &view
		}
	}
	return p
}

func (s *Session) recompute() {
	results, err := s.engine.Query(s.catalog, s.criteria, s.sortKey)
	if err != nil {
		// sortKey is validated on every write
		results = s.engine.Select(s.catalog, s.criteria)
	}
	s.results = results
	metrics.FilterPasses.WithLabelValues(s.name).Inc()
}

func (s *Session) render() {
	s.binder.Render(s.Projection())
}

func focusTargets(seller domain.Seller) []string {
	var targets []string
	if seller.Contacts.WhatsApp != "" {
		targets = append(targets, detail.FocusWhatsApp)
	}
	if seller.Contacts.Instagram != "" {
		targets = append(targets, detail.FocusInstagram)
	}
	if seller.Contacts.Snapchat != "" {
		targets = append(targets, detail.FocusSnapchat)
	}
	return targets
}
