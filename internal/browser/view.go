package browser

import (
	"fmt"
	"math"
	"strings"

	"github.com/cristianoliveira/adnow/internal/domain"
)

// MaxCardTags is the number of product tags shown on a seller card.
const MaxCardTags = 3

// Contact link prefixes.
const (
	whatsAppURL  = "https://wa.me/"
	instagramURL = "https://instagram.com/"
	snapchatURL  = "https://snapchat.com/add/"
)

// ContactLink is a display-ready contact action.
type ContactLink struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SellerView is the display-ready form of a seller.
type SellerView struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Location    string        `json:"location"`
	Rating      float64       `json:"rating"`
	Stars       string        `json:"stars"`
	RatingLabel string        `json:"ratingLabel"`
	Tags        []string      `json:"tags"`
	Products    []string      `json:"products"`
	Joined      string        `json:"joined,omitempty"`
	Contacts    []ContactLink `json:"contacts"`
	Verified    bool          `json:"verified"`
	Featured    bool          `json:"featured"`
	Badges      []string      `json:"badges"`
	Image       string        `json:"image,omitempty"`
}

// CategoryView is the display-ready form of a category facet.
type CategoryView struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// NewSellerView builds the display record for a seller.
func NewSellerView(s domain.Seller) SellerView {
	products := make([]string, len(s.Products))
	copy(products, s.Products)
	tags := products
	if len(tags) > MaxCardTags {
		tags = tags[:MaxCardTags]
	}

	return SellerView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Location:    s.Location,
		Rating:      s.Rating,
		Stars:       Stars(s.Rating),
		RatingLabel: RatingLabel(s.Rating),
		Tags:        tags,
		Products:    products,
		Joined:      JoinedLabel(s),
		Contacts:    ContactLinks(s.Contacts),
		Verified:    s.Verified,
		Featured:    s.Featured,
		Badges:      badges(s),
		Image:       s.Image,
	}
}

// Stars renders one ⭐ per whole rating point plus ✨ for a half point.
func Stars(rating float64) string {
	rating = domain.ClampRating(rating)
	full := int(math.Floor(rating))
	stars := strings.Repeat("⭐", full)
	if rating-float64(full) >= 0.5 && full < int(domain.MaxRating) {
		stars += "✨"
	}
	return stars
}

// RatingLabel renders a rating as "4.5 / 5.0".
func RatingLabel(rating float64) string {
	return fmt.Sprintf("%.1f / %.1f", domain.ClampRating(rating), domain.MaxRating)
}

// JoinedLabel renders the joined date as "January 2023", or "" when unknown.
func JoinedLabel(s domain.Seller) string {
	if s.JoinedDate.IsZero() {
		return ""
	}
	return s.JoinedDate.Format("January 2006")
}

// ContactLinks builds the contact actions for the handles that are set.
func ContactLinks(c domain.Contacts) []ContactLink {
	links := make([]ContactLink, 0, 3)
	if digits := digitsOnly(c.WhatsApp); digits != "" {
		links = append(links, ContactLink{Kind: "whatsapp", Label: "WhatsApp", URL: whatsAppURL + digits})
	}
	if handle := strings.TrimPrefix(strings.TrimSpace(c.Instagram), "@"); handle != "" {
		links = append(links, ContactLink{Kind: "instagram", Label: "Instagram", URL: instagramURL + handle})
	}
	if handle := strings.TrimPrefix(strings.TrimSpace(c.Snapchat), "@"); handle != "" {
		links = append(links, ContactLink{Kind: "snapchat", Label: "Snapchat", URL: snapchatURL + handle})
	}
	return links
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func badges(s domain.Seller) []string {
	out := make([]string, 0, 2)
	if s.Featured {
		out = append(out, "Featured")
	}
	if s.Verified {
		out = append(out, "Verified")
	}
	return out
}
