package main

import (
	"context"
	"io"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/spf13/cobra"
)

// NewCategoriesCmd creates the categories command with explicit dependencies.
func NewCategoriesCmd(client catalogClient) *cobra.Command {
	if client == nil {
		panic("NewCategoriesCmd: client dependency cannot be nil")
	}

	var formatName string
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories with seller counts",
		Long: `List categories in catalog order. Counts are computed from the sellers.

USAGE:
    adnow categories [--format=<format>]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintCategories(cmd.Context(), client, formatName, cmd.OutOrStdout())
		},
	}
	categoriesCmd.Flags().StringVar(&formatName, "format", "", "Output format: table, simple, compact, json")
	return categoriesCmd
}

// PrintCategories writes the category facets.
func PrintCategories(ctx context.Context, client catalogClient, formatName string, w io.Writer) error {
	formatter, err := resolveFormatter(formatName)
	if err != nil {
		return err
	}
	c, err := loadCatalog(ctx, client)
	if err != nil {
		return err
	}
	categories := c.Categories()
	views := make([]browser.CategoryView, len(categories))
	for i, cat := range categories {
		views[i] = browser.CategoryView{Name: cat.Name, Icon: cat.Icon, Count: cat.Count}
	}
	return formatter.FormatCategories(views, w)
}

func init() {
	cmd.RootCmd.AddCommand(NewCategoriesCmd(coreClient))
}
