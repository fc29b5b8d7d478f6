package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/config"
	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/format"
	"github.com/cristianoliveira/adnow/internal/metrics"
	"github.com/spf13/cobra"
)

type catalogClient interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}

type listClient interface {
	catalogClient
	DefaultSort() domain.SortKey
}

const listCommandLong = `List sellers with search, category and sort options.

USAGE:
    adnow list [OPTIONS]

OPTIONS:
    --search <text>      Keep sellers whose name, description, location or products contain text
    --category <name>    Keep sellers of one category (exact name)
    --sort <key>         Order by name, rating or newest (default: saved preference)
    --featured           Keep featured sellers only
    --format=<format>    Output format: table (default), simple, compact, json
    -h, --help           Show this help

The filter runs before the sort, so the order is the same for any search.`

// ListOptions holds the list command options.
type ListOptions struct {
	Search   string
	Category string
	Sort     string
	Featured bool
	Format   string
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var opts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sellers with filters and formats",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintList(cmd.Context(), client, opts, cmd.OutOrStdout())
		},
	}

	listCmd.Flags().StringVar(&opts.Search, "search", "", "Search text (case-insensitive substring)")
	listCmd.Flags().StringVar(&opts.Category, "category", "", "Category name")
	listCmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort key: name, rating, newest")
	listCmd.Flags().BoolVar(&opts.Featured, "featured", false, "Featured sellers only")
	listCmd.Flags().StringVar(&opts.Format, "format", "", "Output format: table, simple, compact, json")

	return listCmd
}

// PrintList runs one filter-sort pass and writes the result.
func PrintList(ctx context.Context, client listClient, opts ListOptions, w io.Writer) error {
	formatter, err := resolveFormatter(opts.Format)
	if err != nil {
		return err
	}
	key := client.DefaultSort()
	if opts.Sort != "" {
		key, err = domain.ParseSortKey(opts.Sort)
		if err != nil {
			return err
		}
	}

	c, err := loadCatalog(ctx, client)
	if err != nil {
		return err
	}
	if opts.Category != "" && !c.HasCategory(opts.Category) {
		return fmt.Errorf("%w: %s (valid: %s)", browser.ErrUnknownCategory, opts.Category, strings.Join(categoryNames(c), ", "))
	}

	p, err := browser.Project(c, domain.NewCriteria(opts.Search, opts.Category), key, detail.Closed)
	if err != nil {
		return err
	}
	metrics.FilterPasses.WithLabelValues("cli").Inc()

	sellers := p.Sellers
	if opts.Featured {
		featured := make([]browser.SellerView, 0, len(sellers))
		for _, s := range sellers {
			if s.Featured {
				featured = append(featured, s)
			}
		}
		sellers = featured
	}

	if len(sellers) == 0 {
		if _, ok := formatter.(*format.JSONFormatter); ok {
			return formatter.FormatSellers(nil, w)
		}
		_, err := fmt.Fprintln(w, browser.NoResultsMessage)
		return err
	}
	return formatter.FormatSellers(sellers, w)
}

// resolveFormatter picks the formatter named by the flag, else output_format.
func resolveFormatter(name string) (format.Formatter, error) {
	if strings.TrimSpace(name) == "" {
		name = config.Get("output_format", string(format.FormatterTypeTable))
	}
	ft, err := format.ParseFormatterType(name)
	if err != nil {
		return nil, err
	}
	return format.NewFormatter(ft), nil
}

// loadCatalog loads the snapshot. A *catalog.LoadError is returned unchanged.
func loadCatalog(ctx context.Context, client catalogClient) (*domain.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return client.LoadCatalog(ctx)
}

func categoryNames(c *domain.Catalog) []string {
	categories := c.Categories()
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	return names
}

func init() {
	cmd.RootCmd.AddCommand(NewListCmd(coreClient))
}
