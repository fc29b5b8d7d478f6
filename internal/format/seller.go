package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/adnow/internal/browser"
)

const (
	simpleNameWidth  = 28
	compactNameWidth = 60
)

// SimpleFormatter formats sellers as "ID  name  rating".
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatSellers formats sellers in simple format.
func (f *SimpleFormatter) FormatSellers(sellers []browser.SellerView, writer io.Writer) error {
	for _, s := range sellers {
		_, err := fmt.Fprintf(writer, "%-4d  %s  %s\n", s.ID, truncateString(s.Name, simpleNameWidth), s.RatingLabel)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatCategories formats categories in simple format.
func (f *SimpleFormatter) FormatCategories(categories []browser.CategoryView, writer io.Writer) error {
	for _, c := range categories {
		_, err := fmt.Fprintf(writer, "%s (%d)\n", strings.TrimSpace(c.Icon+" "+c.Name), c.Count)
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter formats sellers with the name only.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatSellers formats sellers in compact format.
func (f *CompactFormatter) FormatSellers(sellers []browser.SellerView, writer io.Writer) error {
	for _, s := range sellers {
		_, err := fmt.Fprintln(writer, strings.TrimRight(truncateString(s.Name, compactNameWidth), " "))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatCategories formats category names only.
func (f *CompactFormatter) FormatCategories(categories []browser.CategoryView, writer io.Writer) error {
	for _, c := range categories {
		_, err := fmt.Fprintln(writer, c.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats sellers as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatSellers formats sellers as JSON.
func (f *JSONFormatter) FormatSellers(sellers []browser.SellerView, writer io.Writer) error {
	if sellers == nil {
		sellers = []browser.SellerView{}
	}
	return writeIndented(sellers, "sellers", writer)
}

// FormatCategories formats categories as JSON.
func (f *JSONFormatter) FormatCategories(categories []browser.CategoryView, writer io.Writer) error {
	if categories == nil {
		categories = []browser.CategoryView{}
	}
	return writeIndented(categories, "categories", writer)
}

func writeIndented(v interface{}, what string, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}
	_, err = writer.Write(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// Detail writes the full record of one seller.
func Detail(s browser.SellerView, writer io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Name)
	if len(s.Badges) > 0 {
		fmt.Fprintf(&b, "  %s\n", strings.Join(s.Badges, " · "))
	}
	fmt.Fprintf(&b, "  Rating:    %s %s\n", s.Stars, s.RatingLabel)
	fmt.Fprintf(&b, "  Category:  %s\n", s.Category)
	if s.Location != "" {
		fmt.Fprintf(&b, "  Location:  %s\n", s.Location)
	}
	if s.Joined != "" {
		fmt.Fprintf(&b, "  Joined:    %s\n", s.Joined)
	}
	if s.Description != "" {
		fmt.Fprintf(&b, "\n  %s\n", s.Description)
	}
	if len(s.Products) > 0 {
		b.WriteString("\n  Products:\n")
		for _, p := range s.Products {
			fmt.Fprintf(&b, "    - %s\n", p)
		}
	}
	if len(s.Contacts) > 0 {
		b.WriteString("\n  Contact:\n")
		for _, c := range s.Contacts {
			fmt.Fprintf(&b, "    %-10s %s\n", c.Label, c.URL)
		}
	}
	_, err := io.WriteString(writer, b.String())
	return err
}
