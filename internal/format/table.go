package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/colors"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":       4,
			"Name":     24,
			"Category": 12,
			"Location": 22,
			"Rating":   6,
			"Tags":     32,
		},
		ColumnAlignments: map[string]string{
			"ID":     "right",
			"Rating": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from a seller.
	Extractor func(*browser.SellerView) string
}

// TableFormatter formats sellers in a table with a configurable column set.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a new TableFormatter with default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	column := func(name string, value func(*browser.SellerView) string) TableColumn {
		width := config.ColumnWidths[name]
		alignment := config.ColumnAlignments[name]
		return TableColumn{
			Name:      name,
			Width:     width,
			Alignment: alignment,
			Extractor: func(s *browser.SellerView) string {
				if alignment == "" {
					return truncateString(value(s), width)
				}
				return formatString(value(s), width, alignment)
			},
		}
	}
	columns := []TableColumn{
		column("ID", func(s *browser.SellerView) string { return fmt.Sprintf("%d", s.ID) }),
		column("Name", func(s *browser.SellerView) string {
			if s.Verified {
				return s.Name + " ✓"
			}
			return s.Name
		}),
		column("Category", func(s *browser.SellerView) string { return s.Category }),
		column("Location", func(s *browser.SellerView) string { return s.Location }),
		column("Rating", func(s *browser.SellerView) string { return fmt.Sprintf("%.1f", s.Rating) }),
		column("Tags", func(s *browser.SellerView) string { return strings.Join(s.Tags, ", ") }),
	}
	return &TableFormatter{
		config:  config,
		columns: columns,
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatSellers formats sellers in table format.
func (f *TableFormatter) FormatSellers(sellers []browser.SellerView, writer io.Writer) error {
	if len(sellers) == 0 {
		return nil
	}

	// Write header if enabled
	if f.config.ShowHeaders {
		err := f.writeHeader(writer)
		if err != nil {
			return err
		}
	}

	// Write separator
	err := f.writeSeparator(writer)
	if err != nil {
		return err
	}

	// Write rows
	for i := range sellers {
		err := f.writeRow(&sellers[i], writer)
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatCategories formats categories as a two column table.
func (f *TableFormatter) FormatCategories(categories []browser.CategoryView, writer io.Writer) error {
	if len(categories) == 0 {
		return nil
	}
	reset := colors.Reset
	nameWidth := f.config.ColumnWidths["Category"] + 4
	_, err := fmt.Fprintf(writer, "%s%s  %s%s\n", f.config.HeaderColor, formatString("CATEGORY", nameWidth, "left"), "COUNT", reset)
	if err != nil {
		return err
	}
	for _, c := range categories {
		label := strings.TrimSpace(c.Icon + " " + c.Name)
		_, err := fmt.Fprintf(writer, "%s  %5d\n", truncateString(label, nameWidth), c.Count)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the table header.
func (f *TableFormatter) writeHeader(writer io.Writer) error {
	reset := colors.Reset
	for i, col := range f.columns {
		header := formatString(strings.ToUpper(col.Name), col.Width, col.Alignment)
		if i == 0 {
			_, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, header, reset)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "  %s", header)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeSeparator writes the table separator.
func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	reset := colors.Reset
	for i, col := range f.columns {
		separator := makeSeparator(col.Width)
		if i == 0 {
			_, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, separator, reset)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "  %s", separator)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeRow writes a single table row.
func (f *TableFormatter) writeRow(seller *browser.SellerView, writer io.Writer) error {
	for i, col := range f.columns {
		value := col.Extractor(seller)
		if i > 0 {
			_, err := fmt.Fprintf(writer, "  %s", value)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "%s", value)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// Helper functions

// formatString formats a string with the specified width and alignment.
// Width is counted in runes.
func formatString(s string, width int, alignment string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		right := width - n - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-n)
	}
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n <= width {
		return s + strings.Repeat(" ", width-n)
	}
	runes := []rune(s)
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
