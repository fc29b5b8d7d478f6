package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/format"
	"github.com/spf13/cobra"
)

type showClient interface {
	catalogClient
	IsFavorite(id int) bool
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var asJSON bool
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full record of a seller",
		Long: `Show the full record of a seller: rating, category, location,
joined date, description, products and contact links.

USAGE:
    adnow show <id> [--json]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSellerID(args[0])
			if err != nil {
				return err
			}
			return PrintSeller(cmd.Context(), client, id, asJSON, cmd.OutOrStdout())
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print the seller as JSON")
	return showCmd
}

// PrintSeller writes one seller record.
func PrintSeller(ctx context.Context, client showClient, id int, asJSON bool, w io.Writer) error {
	c, err := loadCatalog(ctx, client)
	if err != nil {
		return err
	}
	seller, ok := c.Seller(id)
	if !ok {
		return fmt.Errorf("%w: %d", browser.ErrSellerNotFound, id)
	}
	view := browser.NewSellerView(seller)
	if asJSON {
		return format.NewJSONFormatter().FormatSellers([]browser.SellerView{view}, w)
	}
	if err := format.Detail(view, w); err != nil {
		return err
	}
	if client.IsFavorite(id) {
		_, err = fmt.Fprintln(w, "\n  ★ In your favorites")
	}
	return err
}

func init() {
	cmd.RootCmd.AddCommand(NewShowCmd(coreClient))
}
