// Package domain provides the domain layer for the seller catalog.
// It contains the catalog entities, filter criteria and sort keys.
package domain

import (
	"math"
	"time"
)

// Rating bounds.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Contacts holds the optional messaging and social handles of a seller.
type Contacts struct {
	WhatsApp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Snapchat  string `json:"snapchat,omitempty"`
}

// IsEmpty reports whether no contact handle is set.
func (c Contacts) IsEmpty() bool {
	return c.WhatsApp == "" && c.Instagram == "" && c.Snapchat == ""
}

// Seller represents a single catalog listing.
type Seller struct {
	ID          int       `json:"id" validate:"gte=1"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category" validate:"required"`
	Location    string    `json:"location"`
	Rating      float64   `json:"rating"`
	Products    []string  `json:"products"`
	Contacts    Contacts  `json:"contacts"`
	Verified    bool      `json:"verified"`
	Featured    bool      `json:"featured"`
	Image       string    `json:"image,omitempty"`
	JoinedDate  time.Time `json:"joinedDate"`
}

// Clone returns a copy of the seller that shares no slices with the original.
func (s Seller) Clone() Seller {
	if s.Products != nil {
		products := make([]string, len(s.Products))
		copy(products, s.Products)
		s.Products = products
	}
	return s
}

// Category represents a catalog facet. Count is derived from the sellers
// whose Category field equals Name and is only set by NewCatalog.
type Category struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// ClampRating limits a rating to the [MinRating, MaxRating] range.
func ClampRating(r float64) float64 {
	if math.IsNaN(r) || r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}
