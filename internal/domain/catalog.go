package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDuplicateSellerID indicates two sellers share the same ID.
	ErrDuplicateSellerID = errors.New("duplicate seller id")
	// ErrDuplicateCategory indicates two categories share the same name.
	ErrDuplicateCategory = errors.New("duplicate category")
	// ErrUnknownCategory indicates a seller references a category outside the catalog set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidRecord indicates a seller or category failed field validation.
	ErrInvalidRecord = errors.New("invalid record")
)

var validate = validator.New()

// Catalog is an immutable snapshot of sellers and categories.
// All accessors return copies; nothing mutates a Catalog after NewCatalog.
type Catalog struct {
	sellers    []Seller
	categories []Category
	byID       map[int]int
	byName     map[string]int
}

// NewCatalog builds a catalog snapshot.
// Ratings are clamped to [0,5] and category counts are derived from sellers.
// Returns an error if IDs or category names repeat, if a seller references a
// category not in the set, or if a record fails validation.
func NewCatalog(sellers []Seller, categories []Category) (*Catalog, error) {
	c := &Catalog{
		sellers:    make([]Seller, 0, len(sellers)),
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[int]int, len(sellers)),
		byName:     make(map[string]int, len(categories)),
	}

	for _, cat := range categories {
		if err := validate.Struct(cat); err != nil {
			return nil, fmt.Errorf("category %q: %w: %v", cat.Name, ErrInvalidRecord, err)
		}
		if _, exists := c.byName[cat.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, cat.Name)
		}
		cat.Count = 0
		c.byName[cat.Name] = len(c.categories)
		c.categories = append(c.categories, cat)
	}

	for _, s := range sellers {
		if err := validate.Struct(s); err != nil {
			return nil, fmt.Errorf("seller %d: %w: %v", s.ID, ErrInvalidRecord, err)
		}
		if _, exists := c.byID[s.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSellerID, s.ID)
		}
		idx, ok := c.byName[s.Category]
		if !ok {
			return nil, fmt.Errorf("seller %d: %w: %s", s.ID, ErrUnknownCategory, s.Category)
		}
		s = s.Clone()
		s.Rating = ClampRating(s.Rating)
		c.categories[idx].Count++
		c.byID[s.ID] = len(c.sellers)
		c.sellers = append(c.sellers, s)
	}

	return c, nil
}

// Len returns the number of sellers in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sellers)
}

// Sellers returns the sellers in catalog insertion order.
func (c *Catalog) Sellers() []Seller {
	if c == nil {
		return nil
	}
	out := make([]Seller, len(c.sellers))
	for i, s := range c.sellers {
		out[i] = s.Clone()
	}
	return out
}

// Categories returns the categories in catalog order with derived counts.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Seller looks up a seller by ID.
func (c *Catalog) Seller(id int) (Seller, bool) {
	if c == nil {
		return Seller{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Seller{}, false
	}
	return c.sellers[idx].Clone(), true
}

// Category looks up a category by exact name.
func (c *Catalog) Category(name string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	idx, ok := c.byName[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// HasCategory reports whether name is one of the catalog categories.
func (c *Catalog) HasCategory(name string) bool {
	_, ok := c.Category(name)
	return ok
}

// Featured returns featured sellers in catalog order.
func (c *Catalog) Featured() []Seller {
	if c == nil {
		return nil
	}
	out := make([]Seller, 0)
	for _, s := range c.sellers {
		if s.Featured {
			out = append(out, s.Clone())
		}
	}
	return out
}

// Position returns the catalog insertion index of a seller, or -1.
func (c *Catalog) Position(id int) int {
	if c == nil {
		return -1
	}
	idx, ok := c.byID[id]
	if !ok {
		return -1
	}
	return idx
}
