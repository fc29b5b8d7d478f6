package browser

import (
	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/engine"
)

// NoResultsMessage is shown when a filter pass selects nothing.
const NoResultsMessage = "No sellers found"

// DetailView is the overlay part of a projection.
type DetailView struct {
	Open         bool        `json:"open"`
	Seller       *SellerView `json:"seller,omitempty"`
	FocusTrapped bool        `json:"focusTrapped"`
	ScrollLocked bool        `json:"scrollLocked"`
	Focused      string      `json:"focused,omitempty"`
}

// Projection is everything a binder needs to draw one frame.
type Projection struct {
	Sellers    []SellerView    `json:"sellers"`
	Empty      bool            `json:"empty"`
	Total      int             `json:"total"`
	Criteria   domain.Criteria `json:"criteria"`
	SortKey    domain.SortKey  `json:"sortKey"`
	Categories []CategoryView  `json:"categories"`
	Featured   []SellerView    `json:"featured"`
	Detail     DetailView      `json:"detail"`
}

// Binder receives a projection on every transition.
type Binder interface {
	Render(Projection)
}

// BinderFunc adapts a function to Binder.
type BinderFunc func(Projection)

// Render calls f(p).
func (f BinderFunc) Render(p Projection) {
	f(p)
}

// Project builds a projection without a session. The detail overlay is
// projected from state alone; an open state for a seller missing from the
// catalog projects as closed.
func Project(c *domain.Catalog, criteria domain.Criteria, key domain.SortKey, state detail.State) (Projection, error) {
	sellers, err := engine.Query(c, criteria, key)
	if err != nil {
		return Projection{}, err
	}
	p := build(c, criteria, key, sellers)
	if state.Open {
		if s, ok := c.Seller(state.SellerID); ok {
			view := NewSellerView(s)
			p.Detail = DetailView{Open: true, Seller: &view, FocusTrapped: true, ScrollLocked: true}
		}
	}
	return p, nil
}

func build(c *domain.Catalog, criteria domain.Criteria, key domain.SortKey, sellers []domain.Seller) Projection {
	views := make([]SellerView, len(sellers))
	for i, s := range sellers {
		views[i] = NewSellerView(s)
	}

	cats := c.Categories()
	catViews := make([]CategoryView, len(cats))
	for i, cat := range cats {
		catViews[i] = CategoryView{Name: cat.Name, Icon: cat.Icon, Count: cat.Count, Selected: cat.Name == criteria.Category}
	}

	featured := c.Featured()
	featuredViews := make([]SellerView, len(featured))
	for i, s := range featured {
		featuredViews[i] = NewSellerView(s)
	}

	return Projection{
		Sellers:    views,
		Empty:      len(views) == 0,
		Total:      c.Len(),
		Criteria:   criteria,
		SortKey:    key,
		Categories: catViews,
		Featured:   featuredViews,
	}
}
